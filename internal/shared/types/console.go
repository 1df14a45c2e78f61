package types

// ConsoleInterface define a interface para saída no console.
type ConsoleInterface interface {
	Print(a ...interface{})
	Printf(format string, a ...interface{})
	Println(a ...interface{})

	LogInfo(format string, a ...interface{})
	LogWarning(format string, a ...interface{})
	LogError(format string, a ...interface{})
	LogSuccess(format string, a ...interface{})

	Status(message string) StatusHandle

	CreateTable() TableInterface
	DisplayBars(title string, bars []Bar)
	DisplayChangeSeries(title string, points []ChangePoint)
}

// StatusHandle é uma interface para atualizar uma mensagem de status.
type StatusHandle interface {
	Update(message string)
	Stop()
}

// TableInterface define a interface para criar e manipular tabelas.
type TableInterface interface {
	AddColumn(name string, options ...interface{})
	AddRow(cells ...interface{})
	Render() string
}

// Bar is one labelled value of a terminal bar panel.
type Bar struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ChangePoint is one period of a percentage-change series; Change is nil when undefined.
type ChangePoint struct {
	Label  string   `json:"label"`
	Value  float64  `json:"value"`
	Change *float64 `json:"change"`
}

package types

// CLIArgs represents the command-line arguments.
// Nil filter slices mean the flag was not given (use the default selection);
// a non-nil empty slice is an explicit empty selection.
type CLIArgs struct {
	ConfigFile  string
	Data        string
	Serve       bool
	Addr        string
	Years       []int
	Months      []string
	States      []string
	Gender      string
	ReportName  string
	ReportType  []string
	Dir         string
	Consistency string
}

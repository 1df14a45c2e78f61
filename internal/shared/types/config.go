package types

// Consistency modes for the male+female = total check done at load time.
const (
	ConsistencyWarn   = "warn"
	ConsistencyStrict = "strict"
	ConsistencyOff    = "off"
)

// Columns names the dataset columns the loader reads.
type Columns struct {
	Date     string `json:"date" yaml:"date" toml:"date"`
	State    string `json:"state" yaml:"state" toml:"state"`
	Country  string `json:"country" yaml:"country" toml:"country"`
	Arrivals string `json:"arrivals" yaml:"arrivals" toml:"arrivals"`
	Male     string `json:"male" yaml:"male" toml:"male"`
	Female   string `json:"female" yaml:"female" toml:"female"`
}

// DefaultColumns are the headers of arrivals_soe.csv.
func DefaultColumns() Columns {
	return Columns{
		Date:     "Date",
		State:    "Migration State",
		Country:  "Country",
		Arrivals: "Arrivals",
		Male:     "Arrivals: Gender Male",
		Female:   "Arrivals: Gender Female",
	}
}

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	Data        string   `json:"data" yaml:"data" toml:"data"`
	Addr        string   `json:"addr" yaml:"addr" toml:"addr"`
	Consistency string   `json:"consistency" yaml:"consistency" toml:"consistency"`
	Columns     Columns  `json:"columns" yaml:"columns" toml:"columns"`
	AWSProfile  string   `json:"aws_profile" yaml:"aws_profile" toml:"aws_profile"`
	AWSRegion   string   `json:"aws_region" yaml:"aws_region" toml:"aws_region"`
	SQLQuery    string   `json:"sql_query" yaml:"sql_query" toml:"sql_query"`
	ReportName  string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType  []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir         string   `json:"dir" yaml:"dir" toml:"dir"`
}

// DefaultConfig returns the configuration used when nothing else is set.
func DefaultConfig() Config {
	return Config{
		Data:        "arrivals_soe.csv",
		Addr:        ":8501",
		Consistency: ConsistencyWarn,
		Columns:     DefaultColumns(),
		SQLQuery:    "SELECT date, migration_state, country, arrivals, arrivals_male, arrivals_female FROM arrivals_soe",
	}
}

// Merge overlays the non-zero fields of other onto c.
func (c *Config) Merge(other Config) {
	if other.Data != "" {
		c.Data = other.Data
	}
	if other.Addr != "" {
		c.Addr = other.Addr
	}
	if other.Consistency != "" {
		c.Consistency = other.Consistency
	}
	if other.AWSProfile != "" {
		c.AWSProfile = other.AWSProfile
	}
	if other.AWSRegion != "" {
		c.AWSRegion = other.AWSRegion
	}
	if other.SQLQuery != "" {
		c.SQLQuery = other.SQLQuery
	}
	if other.ReportName != "" {
		c.ReportName = other.ReportName
	}
	if len(other.ReportType) > 0 {
		c.ReportType = other.ReportType
	}
	if other.Dir != "" {
		c.Dir = other.Dir
	}
	mergeColumn(&c.Columns.Date, other.Columns.Date)
	mergeColumn(&c.Columns.State, other.Columns.State)
	mergeColumn(&c.Columns.Country, other.Columns.Country)
	mergeColumn(&c.Columns.Arrivals, other.Columns.Arrivals)
	mergeColumn(&c.Columns.Male, other.Columns.Male)
	mergeColumn(&c.Columns.Female, other.Columns.Female)
}

func mergeColumn(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

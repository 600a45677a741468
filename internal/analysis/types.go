package analysis

// Report is the YAML summary of one selection of the listening history.
type Report struct {
	Metadata          ReportMetadata    `yaml:"metadata"`
	Monthly           []MonthStat       `yaml:"monthly"`
	TopArtists        []ArtistStat      `yaml:"top_artists"`
	Heatmap           []HeatStat        `yaml:"heatmap,omitempty"`
	ListeningPatterns ListeningPatterns `yaml:"listening_patterns"`
}

type ReportMetadata struct {
	GeneratedDate string   `yaml:"generated_date"`
	Year          int      `yaml:"year"`
	Artists       []string `yaml:"artists,omitempty"`
	Platform      string   `yaml:"platform,omitempty"`
	TotalPlays    int      `yaml:"total_plays"`
	TotalMinutes  float64  `yaml:"total_minutes"`
}

type MonthStat struct {
	Month   string  `yaml:"month"`
	Minutes float64 `yaml:"minutes"`
}

type ArtistStat struct {
	Name    string  `yaml:"name"`
	Minutes float64 `yaml:"minutes"`
	Share   float64 `yaml:"share"`
}

type HeatStat struct {
	Weekday string  `yaml:"weekday"`
	Hour    int     `yaml:"hour"`
	Minutes float64 `yaml:"minutes"`
}

type ListeningPatterns struct {
	ActiveDays           int     `yaml:"active_days"`
	MinutesPerActiveDay  float64 `yaml:"minutes_per_active_day"`
	BusiestWeekday       string  `yaml:"busiest_weekday,omitempty"`
	BusiestHour          *int    `yaml:"busiest_hour,omitempty"`
	BusiestMonth         string  `yaml:"busiest_month,omitempty"`
	UnknownArtistMinutes float64 `yaml:"unknown_artist_minutes"`
}

package conf

// Bootstrap is the top-level configuration loaded at startup.
type Bootstrap struct {
	Server *Server `json:"server"`
	Data   *Data   `json:"data"`
}

// Server holds transport configuration.
type Server struct {
	HTTP *HTTPServer `json:"http"`
}

// HTTPServer configures the HTTP listener.
type HTTPServer struct {
	Network string `json:"network"`
	Addr    string `json:"addr"`
	// Timeout is a Go duration string, e.g. "1s".
	Timeout string `json:"timeout"`
}

// Data holds persistence configuration.
type Data struct {
	Database *Database `json:"database"`
	Redis    *Redis    `json:"redis"`
}

// Database selects the SQL driver and data source.
type Database struct {
	// Driver is "sqlite3" (default) or "postgres".
	Driver string `json:"driver"`
	Source string `json:"source"`
}

// Redis configures the optional read cache. Empty Addr disables it.
type Redis struct {
	Addr     string `json:"addr"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

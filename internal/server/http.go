package server

import (
	"time"

	"go-workforce/internal/conf"
	"go-workforce/internal/service"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/wire"
)

// ProviderSet is server providers.
var ProviderSet = wire.NewSet(NewHTTPServer)

// NewHTTPServer new an HTTP server.
func NewHTTPServer(c *conf.Server, employees *service.EmployeeService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
	}
	if c != nil && c.HTTP != nil {
		if c.HTTP.Network != "" {
			opts = append(opts, http.Network(c.HTTP.Network))
		}
		if c.HTTP.Addr != "" {
			opts = append(opts, http.Address(c.HTTP.Addr))
		}
		if c.HTTP.Timeout != "" {
			if d, err := time.ParseDuration(c.HTTP.Timeout); err == nil {
				opts = append(opts, http.Timeout(d))
			}
		}
	}
	srv := http.NewServer(opts...)

	srv.HandleFunc("/employees", employees.HandleEmployees)
	srv.HandleFunc("/employees/", employees.HandleEmployee)

	return srv
}

package config

import (
	"fmt"
	"net"
	neturl "net/url"
	"sort"
	"strconv"
	"strings"
)

// DSNValue returns the driver-specific connection string.
func (c DatabaseConfig) DSNValue() string {
	if v := strings.TrimSpace(c.DSN); v != "" {
		if c.Driver == DriverSQLite {
			return strings.TrimPrefix(v, "sqlite:")
		}
		return v
	}

	switch c.Driver {
	case DriverSQLite:
		return ResolveRuntimePath(c.Name, defaultSQLitePath)
	case DriverPostgres:
		return c.postgresDSN()
	default:
		return c.mysqlDSN()
	}
}

func (c DatabaseConfig) mysqlDSN() string {
	params := neturl.Values{}
	for key, value := range c.Params {
		params.Set(key, value)
	}
	if params.Get("charset") == "" {
		params.Set("charset", defaultDBCharset)
	}
	if params.Get("parseTime") == "" {
		params.Set("parseTime", "true")
	}
	if params.Get("loc") == "" {
		params.Set("loc", defaultDBLoc)
	}

	auth := ""
	if c.User != "" || c.Password != "" {
		auth = c.User
		if c.Password != "" {
			auth += ":" + c.Password
		}
		auth += "@"
	}

	dsn := fmt.Sprintf("%stcp(%s)/%s", auth, net.JoinHostPort(c.Host, strconv.Itoa(c.Port)), c.Name)
	if query := params.Encode(); query != "" {
		dsn += "?" + query
	}
	return dsn
}

func (c DatabaseConfig) postgresDSN() string {
	parts := []string{
		"host=" + c.Host,
		"port=" + strconv.Itoa(c.Port),
		"user=" + c.User,
		"dbname=" + c.Name,
		"sslmode=" + c.SSLMode,
	}
	if c.Password != "" {
		parts = append(parts, "password="+c.Password)
	}
	keys := make([]string, 0, len(c.Params))
	for key := range c.Params {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		parts = append(parts, key+"="+c.Params[key])
	}
	return strings.Join(parts, " ")
}

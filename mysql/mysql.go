// Package mysql connects myorm models to a MySQL server through
// github.com/go-sql-driver/mysql.
//
//	conn, err := mysql.Open(mysql.Config{Host: "localhost", User: "root", Name: "shop"})
//	if err != nil {
//		return err
//	}
//	defer conn.Close()
//	products, err := conn.Model("Product", schema)
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"

	"github.com/go-sql-driver/mysql"
	"github.com/gopsql/logger"
	"github.com/gopsql/myorm"
	"github.com/gopsql/standard"
)

const (
	DefaultHost = "localhost"
	DefaultPort = 3306
)

// MySQL error numbers, see
// https://dev.mysql.com/doc/mysql-errors/8.0/en/server-error-reference.html
const (
	errDupEntry         = 1062
	errRowIsReferenced  = 1451
	errNoReferencedRow2 = 1452
)

type (
	// Config of a connection. Zero Host and Port mean DefaultHost and
	// DefaultPort. Params are added to the DSN as is, like
	// {"charset": "utf8mb4"}.
	Config struct {
		Host   string            `yaml:"host" mapstructure:"host"`
		Port   int               `yaml:"port" mapstructure:"port"`
		User   string            `yaml:"user" mapstructure:"user"`
		Pass   string            `yaml:"pass" mapstructure:"pass"`
		Name   string            `yaml:"name" mapstructure:"name"`
		Params map[string]string `yaml:"params" mapstructure:"params"`
	}

	// DB is a connection pool and a myorm.Driver. Models created with
	// Model() share it.
	DB struct {
		myorm.Driver

		sqlDB  *sql.DB
		config Config
		logger logger.Logger

		mu     sync.Mutex
		models map[string]*myorm.Model
	}
)

// ParseDSN creates a Config from a go-sql-driver/mysql DSN, like
// "root:secret@tcp(localhost:3306)/shop?charset=utf8mb4".
func ParseDSN(dsn string) (Config, error) {
	c, err := mysql.ParseDSN(dsn)
	if err != nil {
		return Config{}, err
	}
	cfg := Config{
		User:   c.User,
		Pass:   c.Passwd,
		Name:   c.DBName,
		Params: c.Params,
	}
	host, port, err := net.SplitHostPort(c.Addr)
	if err != nil {
		cfg.Host = c.Addr
		return cfg, nil
	}
	cfg.Host = host
	if cfg.Port, err = strconv.Atoi(port); err != nil {
		return Config{}, fmt.Errorf("invalid port %q: %w", port, err)
	}
	return cfg, nil
}

// DSN returns the data source name of the config. Time columns are parsed
// into time.Time.
func (c Config) DSN() string {
	return c.mysqlConfig().FormatDSN()
}

func (c Config) mysqlConfig() *mysql.Config {
	host, port := c.Host, c.Port
	if host == "" {
		host = DefaultHost
	}
	if port == 0 {
		port = DefaultPort
	}
	cfg := mysql.NewConfig()
	cfg.User = c.User
	cfg.Passwd = c.Pass
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	cfg.DBName = c.Name
	cfg.ParseTime = true
	if len(c.Params) > 0 {
		cfg.Params = make(map[string]string, len(c.Params))
		for k, v := range c.Params {
			cfg.Params[k] = v
		}
	}
	return cfg
}

// Open creates a connection pool. No connection is made until the first
// statement or Connect().
func Open(config Config) (*DB, error) {
	connector, err := mysql.NewConnector(config.mysqlConfig())
	if err != nil {
		return nil, err
	}
	sqlDB := sql.OpenDB(connector)
	return &DB{
		Driver: myorm.NewDBDriver(standard.NewDB("mysql", sqlDB), config.Name),
		sqlDB:  sqlDB,
		config: config,
		models: map[string]*myorm.Model{},
	}, nil
}

// MustOpen is like Open but panics if the config is invalid.
func MustOpen(config Config) *DB {
	d, err := Open(config)
	if err != nil {
		panic(err)
	}
	return d
}

// Connect pings the server.
func (d *DB) Connect(ctx context.Context) error {
	return d.sqlDB.PingContext(ctx)
}

// Close closes the connection pool.
func (d *DB) Close() error {
	return d.sqlDB.Close()
}

// Config returns the config of the connection.
func (d *DB) Config() Config {
	return d.config
}

// SetLogger sets the logger of models created after this call.
func (d *DB) SetLogger(logger logger.Logger) *DB {
	d.mu.Lock()
	d.logger = logger
	d.mu.Unlock()
	return d
}

// Model returns the model with the given name, creating it with schema on
// first use. Later calls with the same name return the same model and ignore
// schema.
func (d *DB) Model(name string, schema *myorm.Schema) (*myorm.Model, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if m, ok := d.models[name]; ok {
		return m, nil
	}
	m, err := myorm.NewModel(name, schema, myorm.Driver(d))
	if err != nil {
		return nil, err
	}
	if d.logger != nil {
		m.SetLogger(d.logger)
	}
	d.models[name] = m
	return m, nil
}

// IsDuplicateEntry returns true if err is a duplicate key error (1062).
func IsDuplicateEntry(err error) bool {
	return errorNumber(err) == errDupEntry
}

// IsForeignKeyViolation returns true if err is a foreign key constraint
// error, on either the parent (1451) or the child (1452) row.
func IsForeignKeyViolation(err error) bool {
	n := errorNumber(err)
	return n == errRowIsReferenced || n == errNoReferencedRow2
}

func errorNumber(err error) uint16 {
	var e *mysql.MySQLError
	if errors.As(err, &e) {
		return e.Number
	}
	return 0
}

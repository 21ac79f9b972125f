package api

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/VeloPay/VeloPay-Console/db"
	"github.com/VeloPay/VeloPay-Console/services/monitoring/logging"
	"github.com/VeloPay/VeloPay-Console/services/security"
	"github.com/VeloPay/VeloPay-Console/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

// / If there's a better place to access this
// / TODO, I feel the config should be the one accessible like this
var TokenController *utils.JWTToken

type Server struct {
	router *gin.Engine
	store  db.Store
	config *utils.Config
	logger *logging.Logger
	guard  *security.Cache
}

func NewServer(envPath string) *Server {
	c, err := utils.LoadConfig(envPath)
	if err != nil {
		panic(fmt.Sprintf("Could not load config: %v", err))
	}

	var store db.Store
	if c.Store == "postgres" {
		conn, err := sql.Open(c.DBDriver, utils.GetDBSource(c, c.DBName))
		if err != nil {
			panic(fmt.Sprintf("Could not load DB: %v", err))
		}

		m, err := migrate.New(
			"file://db/migrations",
			utils.GetDBSource(c, c.DBName),
		)
		if err != nil {
			log.Fatalf("Unable to instantiate the database schema migrator - %v", err)
		}

		if err := m.Up(); err != nil {
			if err != migrate.ErrNoChange {
				log.Fatalf("Unable to migrate up to the latest database schema - %v", err)
			}
		}

		store = db.NewSQLStore(conn)
	} else {
		store = db.NewMemoryStore()
	}

	return newServer(c, store, logging.NewLogger(c))
}

// NewServerWithStore wires a server around a caller-provided store. Used by
// tests to run the service against the in-memory ledger.
func NewServerWithStore(c *utils.Config, store db.Store, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewLogger(c)
	}
	return newServer(c, store, logger)
}

func newServer(c *utils.Config, store db.Store, l *logging.Logger) *Server {
	g := gin.New()
	g.Use(gin.Recovery())
	g.Use(CORSMiddleware())
	g.Use(l.LoggingMiddleWare())

	TokenController = utils.NewJWTToken(c)

	s := &Server{
		router: g,
		store:  store,
		config: c,
		logger: l,
		guard:  security.NewCache(10*time.Second, time.Minute),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "Welcome to VeloPay!",
			"version": utils.REVISION,
		})
	})

	/// Register Object Routers Below
	Auth{}.router(s)
	Wallet{}.router(s)
}

// Handler exposes the configured router for httptest servers.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() {
	s.router.Run(fmt.Sprintf(":%v", s.config.ServerPort))
}

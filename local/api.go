package local

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"stegqr/config"
	"stegqr/util"
)

/*
 * local API server, a replacement of the original upload/download UI:
 * every action takes multipart uploads and answers with JSON.
 */
type Server struct {
	conf    *config.FullConfig
	logger  *util.Logger
	journal *util.DB // optional
}

func NewServer(conf *config.FullConfig, logger *util.Logger, journal *util.DB) *Server {
	return &Server{
		conf:    conf,
		logger:  logger,
		journal: journal,
	}
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/hide", s.handleHide).Methods(http.MethodPost)
	api.HandleFunc("/reveal", s.handleReveal).Methods(http.MethodPost)
	api.HandleFunc("/capacity", s.handleCapacity).Methods(http.MethodPost)
	api.HandleFunc("/history", s.handleHistory).Methods(http.MethodGet)
	return r
}

func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:              s.conf.ServerConfig.Address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.LogInfo("listening and serving at address " + s.conf.ServerConfig.Address)
	return srv.ListenAndServe()
}

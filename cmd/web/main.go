package main

import (
	"bytes"
	_ "embed"
	"errors"
	"html/template"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/spf13/pflag"
	"github.com/tomz197/santavirus/internal/config"
)

//go:embed index.html
var htmlPage string

var pageTemplate = template.Must(template.New("index").Parse(htmlPage))

func main() {
	configPath := pflag.StringP("config", "c", "", "path to a config file")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("config error", "err", err)
	}
	logger, err := config.NewLogger(cfg.Log, os.Stderr)
	if err != nil {
		log.Fatal("log error", "err", err)
	}

	page, err := renderPage(cfg.Web.SSHDisplayHost)
	if err != nil {
		logger.Fatal("failed to render page", "err", err)
	}

	srv := &http.Server{
		Addr:              cfg.Web.Addr(),
		Handler:           newRouter(page, cfg.Web.WasmDir, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("starting web server", "addr", "http://"+cfg.Web.Addr(), "wasmDir", cfg.Web.WasmDir)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", "err", err)
	}
}

// renderPage fills the SSH host into the landing page.
func renderPage(sshHost string) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, struct{ SSHHost string }{sshHost}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// newRouter serves the landing page, the WebAssembly build and a health check.
func newRouter(page []byte, wasmDir string, logger *log.Logger) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	}).Methods(http.MethodGet, http.MethodHead)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	r.PathPrefix("/play/").Handler(http.StripPrefix("/play/", http.FileServer(http.Dir(wasmDir))))

	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, req)
			logger.Debug("request", "method", req.Method, "path", req.URL.Path, "duration", time.Since(start))
		})
	})

	return r
}

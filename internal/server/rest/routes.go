package rest

import (
	"net/http"

	"github.com/dmitrijs2005/classkeeper/internal/common"
	"github.com/dmitrijs2005/classkeeper/internal/logging"
)

type handler struct {
	svc    ClassService
	logger logging.Logger
}

// NewHandler registers all routes and returns the root http.Handler.
//
// Middleware stack (outer → inner):
//
//	requestLog → cors → limitBody → bearerAuth → ServeMux → handler
func NewHandler(svc ClassService, l logging.Logger, opts Options) http.Handler {
	h := &handler{svc: svc, logger: l}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /classes", h.listClasses)
	mux.HandleFunc("POST /classes", h.createClass)
	mux.HandleFunc("GET /classes/{id}", h.getClass)
	mux.HandleFunc("PUT /classes/{id}", h.renameClass)
	mux.HandleFunc("DELETE /classes/{id}", h.deleteClass)
	mux.HandleFunc("GET /classes/{id}/files", h.listFiles)
	mux.HandleFunc("GET /classes/{id}/resources", h.listFiles)
	mux.HandleFunc("POST /classes/{id}/files", h.addFile)
	mux.HandleFunc("GET /classes/{classId}/resources/{id}", h.getFile)
	mux.HandleFunc("DELETE /classes/{classId}/resources/{id}", h.deleteFile)
	mux.HandleFunc("GET /classes/{classId}/resources/{id}/upload-url", h.uploadURL)
	mux.HandleFunc("GET /class/by-pass/{passphrase}", h.getClassByPassPhrase)
	mux.HandleFunc("GET /health", h.health)

	maxBody := opts.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = common.MaxRequestBodyBytes
	}

	var next http.Handler = mux
	next = bearerAuth(opts.SecretKey, l)(next)
	next = limitBody(maxBody)(next)
	next = cors(next)
	next = requestLog(l)(next)
	return next
}

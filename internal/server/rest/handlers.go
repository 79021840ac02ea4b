package rest

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/classkeeper/internal/server/models"
)

func (h *handler) classID(w http.ResponseWriter, r *http.Request, name string) (models.ClassID, bool) {
	id, err := models.ParseClassID(r.PathValue(name))
	if err != nil {
		h.writeError(w, r, err)
		return models.ClassID{}, false
	}
	return id, true
}

func (h *handler) fileID(w http.ResponseWriter, r *http.Request) (models.FileID, bool) {
	id, err := models.ParseFileID(r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return models.FileID{}, false
	}
	return id, true
}

func (h *handler) listClasses(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListClasses(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, list)
}

func (h *handler) createClass(w http.ResponseWriter, r *http.Request) {
	var req classNameRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	c, err := h.svc.CreateClass(r.Context(), req.Name)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.logger.Info(r.Context(), "Class created", "id", c.ID.String(), "subject", SubjectFromContext(r.Context()))
	h.writeJSON(w, r, http.StatusOK, c)
}

func (h *handler) getClass(w http.ResponseWriter, r *http.Request) {
	id, ok := h.classID(w, r, "id")
	if !ok {
		return
	}
	c, err := h.svc.GetClass(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, c)
}

func (h *handler) renameClass(w http.ResponseWriter, r *http.Request) {
	id, ok := h.classID(w, r, "id")
	if !ok {
		return
	}
	var req classNameRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	if err := h.svc.RenameClass(r.Context(), id, req.Name); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) deleteClass(w http.ResponseWriter, r *http.Request) {
	id, ok := h.classID(w, r, "id")
	if !ok {
		return
	}
	c, err := h.svc.DeleteClass(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.logger.Info(r.Context(), "Class deleted", "id", c.ID.String(), "subject", SubjectFromContext(r.Context()))
	h.writeJSON(w, r, http.StatusOK, c)
}

func (h *handler) getClassByPassPhrase(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.GetClassByPassPhrase(r.Context(), models.PassPhrase(r.PathValue("passphrase")))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, c)
}

func (h *handler) listFiles(w http.ResponseWriter, r *http.Request) {
	id, ok := h.classID(w, r, "id")
	if !ok {
		return
	}
	files, err := h.svc.ListFiles(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, files)
}

func (h *handler) addFile(w http.ResponseWriter, r *http.Request) {
	id, ok := h.classID(w, r, "id")
	if !ok {
		return
	}
	var req newFileRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	var createdAt time.Time
	if req.ResourceInfo.CreatedAt != nil {
		createdAt = req.ResourceInfo.CreatedAt.Time
	}
	f, err := h.svc.AddFile(r.Context(), id, req.MarkerID, req.ResourceInfo.FileName, createdAt)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, f)
}

// getFile, deleteFile and uploadURL validate classId, but file lookups
// span all classes.
func (h *handler) getFile(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.classID(w, r, "classId"); !ok {
		return
	}
	id, ok := h.fileID(w, r)
	if !ok {
		return
	}
	f, err := h.svc.GetFile(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, f)
}

func (h *handler) deleteFile(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.classID(w, r, "classId"); !ok {
		return
	}
	id, ok := h.fileID(w, r)
	if !ok {
		return
	}
	f, err := h.svc.DeleteFile(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, f)
}

func (h *handler) uploadURL(w http.ResponseWriter, r *http.Request) {
	classID, ok := h.classID(w, r, "classId")
	if !ok {
		return
	}
	id, ok := h.fileID(w, r)
	if !ok {
		return
	}
	u, err := h.svc.UploadURL(r.Context(), classID, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, u)
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Ping(r.Context()); err != nil {
		h.logger.Warn(r.Context(), "health check failed", "error", err)
		h.writeJSON(w, r, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		return
	}
	h.writeJSON(w, r, http.StatusOK, healthResponse{Status: "ok"})
}

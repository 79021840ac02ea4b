package rest

import (
	"github.com/dmitrijs2005/classkeeper/internal/server/models"
	"github.com/dmitrijs2005/classkeeper/internal/timex"
)

type classNameRequest struct {
	Name string `json:"name"`
}

type newFileRequest struct {
	MarkerID     models.ArMarkerID `json:"markerID"`
	ResourceInfo struct {
		FileName  string              `json:"fileName"`
		CreatedAt *timex.EpochSeconds `json:"createdAt"`
	} `json:"resourceInfo"`
}

type healthResponse struct {
	Status string `json:"status"`
}

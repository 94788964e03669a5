package httpapi

import (
	"time"

	"github.com/riskibarqy/worldcup-insights/internal/domain/worldcup"
)

type readinessDTO struct {
	Status   string    `json:"status"`
	Years    []int     `json:"years"`
	Matches  int       `json:"matches"`
	Teams    int       `json:"teams"`
	LoadedAt time.Time `json:"loaded_at"`
}

type matchListDTO struct {
	Count int              `json:"count"`
	Items []worldcup.Match `json:"items"`
}

package collect

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/jlaffaye/ftp"

	"github.com/agrosight/agrosight/internal/models"
)

// Land-cover bulletins are published as one JSON file per one-degree
// grid cell on the survey agency's FTP server.
const (
	defaultLandUseHost = "ftp.landsurvey.example.org:21"
	landUsePathFmt     = "/pub/landcover/grid_%d_%d.json"
)

// LandUseClient retrieves the gridded land-cover bulletin for a
// coordinate's cell.
type LandUseClient struct {
	host string
}

func NewLandUseClient(host string) *LandUseClient {
	if host == "" {
		host = defaultLandUseHost
	}
	return &LandUseClient{host: host}
}

type landUseBulletin struct {
	GridLat int                `json:"grid_lat"`
	GridLon int                `json:"grid_lon"`
	Covers  map[string]float64 `json:"covers"` // cover type -> fraction
}

// LandUse fetches and summarizes the bulletin for the grid cell
// containing c.
func (l *LandUseClient) LandUse(c models.Coordinates) (*models.LandUseData, error) {
	conn, err := ftp.Dial(l.host, ftp.DialWithTimeout(30*time.Second))
	if err != nil {
		return nil, fmt.Errorf("ftp dial: %w", err)
	}
	defer conn.Quit()

	if err := conn.Login("anonymous", "anonymous"); err != nil {
		return nil, fmt.Errorf("ftp login: %w", err)
	}

	path := fmt.Sprintf(landUsePathFmt, int(math.Floor(c.Lat)), int(math.Floor(c.Lon)))
	resp, err := conn.Retr(path)
	if err != nil {
		return nil, fmt.Errorf("ftp retr %s: %w", path, err)
	}
	defer resp.Close()

	body, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("read bulletin: %w", err)
	}

	var bulletin landUseBulletin
	if err := json.Unmarshal(body, &bulletin); err != nil {
		return nil, fmt.Errorf("unmarshal bulletin: %w", err)
	}
	if len(bulletin.Covers) == 0 {
		return nil, fmt.Errorf("bulletin %s has no cover data", path)
	}

	var types []string
	dominant, best := "", -1.0
	for cover, fraction := range bulletin.Covers {
		types = append(types, cover)
		if fraction > best {
			dominant, best = cover, fraction
		}
	}

	return &models.LandUseData{
		LandCoverTypes: types,
		DominantCover:  dominant,
		Source:         "live",
	}, nil
}

// Package collect holds the concrete collaborator clients the pipeline
// stages fan out to: geocoding, weather, satellite/soil, land use,
// vision image analysis and SMS/voice delivery.
package collect

import (
	"context"
	"sync"

	"github.com/hashicorp/go-multierror"

	"github.com/agrosight/agrosight/internal/models"
)

// Environmental joins the three environmental sub-fetches. The result is
// atomic: any sub-failure fails the whole collection and the caller
// substitutes fallback data for the entire stage.
type Environmental struct {
	satellite *SatelliteClient
	landUse   *LandUseClient
}

func NewEnvironmental(satellite *SatelliteClient, landUse *LandUseClient) *Environmental {
	return &Environmental{satellite: satellite, landUse: landUse}
}

// Collect fetches satellite, soil and land-use data concurrently.
func (e *Environmental) Collect(ctx context.Context, c models.Coordinates) (*models.EnvironmentalData, error) {
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		errs    *multierror.Error
		sat     *models.SatelliteData
		soil    *models.SoilData
		landUse *models.LandUseData
	)

	collect := func(fn func() error) {
		defer wg.Done()
		if err := fn(); err != nil {
			mu.Lock()
			errs = multierror.Append(errs, err)
			mu.Unlock()
		}
	}

	wg.Add(3)
	go collect(func() (err error) {
		sat, err = e.satellite.Satellite(ctx, c)
		return err
	})
	go collect(func() (err error) {
		soil, err = e.satellite.Soil(ctx, c)
		return err
	})
	go collect(func() (err error) {
		landUse, err = e.landUse.LandUse(c)
		return err
	})
	wg.Wait()

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	return &models.EnvironmentalData{
		Satellite: *sat,
		Soil:      *soil,
		LandUse:   *landUse,
		Source:    "live",
	}, nil
}

package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"weatherdash.app/errors"
	"weatherdash.app/models"
)

// csvHeader is the fixed export column order.
var csvHeader = []string{
	"city", "temperature_c", "temperature_f", "humidity",
	"wind_speed_ms", "wind_speed_mph", "latitude", "longitude", "timestamp",
}

// CSVWriter exports the observation table to a CSV file. Each write fully
// replaces the previous file, matching the snapshot's full-replacement
// semantics. Safe for concurrent use.
type CSVWriter struct {
	mu   sync.Mutex
	path string
}

// NewCSVWriter creates a CSV exporter targeting the given path. Intermediate
// directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.NewExportError("create csv output dir", err)
		}
	}
	return &CSVWriter{path: path}, nil
}

// Path returns the export file location.
func (w *CSVWriter) Path() string {
	return w.path
}

// WriteObservations writes header plus one row per observation, replacing any
// previous export.
func (w *CSVWriter) WriteObservations(observations []models.NormalizedObservation) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := os.Create(w.path)
	if err != nil {
		return errors.NewExportError("create csv file", err)
	}
	defer func() {
		_ = f.Close()
	}()

	writer := csv.NewWriter(f)
	if err := writer.Write(csvHeader); err != nil {
		return errors.NewExportError("write csv header", err)
	}

	for _, obs := range observations {
		humidity := ""
		if obs.Humidity != nil {
			humidity = strconv.Itoa(*obs.Humidity)
		}

		row := []string{
			obs.City,
			strconv.FormatFloat(obs.TemperatureC, 'f', 1, 64),
			strconv.FormatFloat(obs.TemperatureF, 'f', 1, 64),
			humidity,
			strconv.FormatFloat(obs.WindSpeedMS, 'f', 1, 64),
			strconv.FormatFloat(obs.WindSpeedMPH, 'f', 1, 64),
			strconv.FormatFloat(obs.Latitude, 'f', -1, 64),
			strconv.FormatFloat(obs.Longitude, 'f', -1, 64),
			obs.Timestamp,
		}
		if err := writer.Write(row); err != nil {
			return errors.NewExportError("write csv row", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.NewExportError("flush csv file", err)
	}
	return nil
}

// ReadObservations reads a previously exported file back into observation
// records. Absent humidity round-trips as an empty cell.
func ReadObservations(path string) ([]models.NormalizedObservation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewExportError("open csv file", err)
	}
	defer func() {
		_ = f.Close()
	}()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, errors.NewExportError("read csv file", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	observations := make([]models.NormalizedObservation, 0, len(records)-1)
	for _, row := range records[1:] {
		if len(row) != len(csvHeader) {
			return nil, errors.NewExportError("malformed csv row", nil)
		}

		obs := models.NormalizedObservation{
			City:      row[0],
			Timestamp: row[8],
		}
		if obs.TemperatureC, err = strconv.ParseFloat(row[1], 64); err != nil {
			return nil, errors.NewExportError("parse temperature_c", err)
		}
		if obs.TemperatureF, err = strconv.ParseFloat(row[2], 64); err != nil {
			return nil, errors.NewExportError("parse temperature_f", err)
		}
		if row[3] != "" {
			humidity, convErr := strconv.Atoi(row[3])
			if convErr != nil {
				return nil, errors.NewExportError("parse humidity", convErr)
			}
			obs.Humidity = &humidity
		}
		if obs.WindSpeedMS, err = strconv.ParseFloat(row[4], 64); err != nil {
			return nil, errors.NewExportError("parse wind_speed_ms", err)
		}
		if obs.WindSpeedMPH, err = strconv.ParseFloat(row[5], 64); err != nil {
			return nil, errors.NewExportError("parse wind_speed_mph", err)
		}
		if obs.Latitude, err = strconv.ParseFloat(row[6], 64); err != nil {
			return nil, errors.NewExportError("parse latitude", err)
		}
		if obs.Longitude, err = strconv.ParseFloat(row[7], 64); err != nil {
			return nil, errors.NewExportError("parse longitude", err)
		}

		observations = append(observations, obs)
	}

	return observations, nil
}

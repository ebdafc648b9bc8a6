package service

import (
	"time"

	"weatherdash.app/models"
)

// Summarize derives extrema and averages over a normalized observation set.
// Returns nil for an empty set; callers must branch before rendering anything
// that assumes insights exist. Extrema ties resolve to the first occurrence
// in the (temperature-sorted) input. Humidity statistics cover only
// observations that carry a humidity value; when none do, the humidity city
// fields stay empty and the average stays nil.
func Summarize(observations []models.NormalizedObservation) *models.Insights {
	if len(observations) == 0 {
		return nil
	}

	insights := &models.Insights{
		TotalCities:    len(observations),
		CollectionTime: time.Now().Format(time.RFC3339),
	}

	hottest, coldest := observations[0], observations[0]
	windiest, calmest := observations[0], observations[0]

	var sumTempC, sumTempF, sumWindMPH float64

	var mostHumid, leastHumid *models.NormalizedObservation
	var sumHumidity, humidityCount float64

	for i := range observations {
		obs := observations[i]

		if obs.TemperatureC > hottest.TemperatureC {
			hottest = obs
		}
		if obs.TemperatureC < coldest.TemperatureC {
			coldest = obs
		}
		if obs.WindSpeedMPH > windiest.WindSpeedMPH {
			windiest = obs
		}
		if obs.WindSpeedMPH < calmest.WindSpeedMPH {
			calmest = obs
		}

		sumTempC += obs.TemperatureC
		sumTempF += obs.TemperatureF
		sumWindMPH += obs.WindSpeedMPH

		if obs.Humidity != nil {
			if mostHumid == nil || *obs.Humidity > *mostHumid.Humidity {
				mostHumid = &observations[i]
			}
			if leastHumid == nil || *obs.Humidity < *leastHumid.Humidity {
				leastHumid = &observations[i]
			}
			sumHumidity += float64(*obs.Humidity)
			humidityCount++
		}
	}

	n := float64(len(observations))
	insights.TemperatureStats = models.TemperatureStats{
		HottestCity:     hottest.City,
		ColdestCity:     coldest.City,
		AvgTemperatureC: Round1(sumTempC / n),
		AvgTemperatureF: Round1(sumTempF / n),
	}
	insights.WindStats = models.WindStats{
		WindiestCity:    windiest.City,
		CalmestCity:     calmest.City,
		AvgWindSpeedMPH: Round1(sumWindMPH / n),
	}

	if mostHumid != nil {
		avgHumidity := Round1(sumHumidity / humidityCount)
		insights.HumidityStats = models.HumidityStats{
			MostHumidCity:  mostHumid.City,
			LeastHumidCity: leastHumid.City,
			AvgHumidity:    &avgHumidity,
		}
	}

	return insights
}

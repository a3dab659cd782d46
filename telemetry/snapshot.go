package telemetry

import "log/slog"

// DaySnapshot is the read-only summary of simulation state after one day,
// consumed by display and summary collaborators. Given a fixed seed and
// config, the snapshot sequence of a run is identical across executions.
type DaySnapshot struct {
	Day        int `csv:"day" json:"day"`
	Population int `csv:"population" json:"population"`
	Food       int `csv:"food" json:"food"`

	// Events during the day
	Births        int `csv:"births" json:"births"`
	DeathsStarved int `csv:"deaths_starved" json:"deaths_starved"`
	DeathsOldAge  int `csv:"deaths_old_age" json:"deaths_old_age"`
	FoodEaten     int `csv:"food_eaten" json:"food_eaten"`

	// Population state (sampled at day end)
	MeanEnergy float64 `csv:"mean_energy" json:"mean_energy"`
	EnergyP10  float64 `csv:"energy_p10" json:"energy_p10"`
	EnergyP50  float64 `csv:"energy_p50" json:"energy_p50"`
	EnergyP90  float64 `csv:"energy_p90" json:"energy_p90"`
	MeanAge    float64 `csv:"mean_age" json:"mean_age"`

	// Average genome traits
	MeanSpeed             float64 `csv:"mean_speed" json:"mean_speed"`
	MeanFeedingEfficiency float64 `csv:"mean_feeding_efficiency" json:"mean_feeding_efficiency"`
	MeanLongevity         float64 `csv:"mean_longevity" json:"mean_longevity"`
	MeanReproductionRate  float64 `csv:"mean_reproduction_rate" json:"mean_reproduction_rate"`
	MeanPerception        float64 `csv:"mean_perception" json:"mean_perception"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s DaySnapshot) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("day", s.Day),
		slog.Int("population", s.Population),
		slog.Int("food", s.Food),
		slog.Int("births", s.Births),
		slog.Int("deaths_starved", s.DeathsStarved),
		slog.Int("deaths_old_age", s.DeathsOldAge),
		slog.Int("food_eaten", s.FoodEaten),
		slog.Float64("mean_energy", s.MeanEnergy),
		slog.Float64("mean_age", s.MeanAge),
		slog.Float64("mean_speed", s.MeanSpeed),
		slog.Float64("mean_feeding_efficiency", s.MeanFeedingEfficiency),
		slog.Float64("mean_longevity", s.MeanLongevity),
		slog.Float64("mean_reproduction_rate", s.MeanReproductionRate),
		slog.Float64("mean_perception", s.MeanPerception),
	)
}

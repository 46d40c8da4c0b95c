package weather

// Snapshot снимок погоды для города и даты
// Для ядра бронирования это непрозрачный payload: он сохраняется
// на бронировании как есть и нигде не интерпретируется
type Snapshot struct {
	City        string  `json:"city"`
	Condition   string  `json:"condition"`
	Temperature float64 `json:"temperature"`
	RainChance  float64 `json:"rain_chance"`
	Humidity    float64 `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
}

package domain

// MoonData данные о фазе Луны на день (глобальные, не зависят от местоположения)
type MoonData struct {
	Phase        string `json:"moon_phase"`
	Illumination int    `json:"moon_illumination"`
	Date         string `json:"date"` // YYYY-MM-DD
	Source       string `json:"source"`
}

// MoonInfo блок о Луне в дневной сводке
type MoonInfo struct {
	Phase        string `json:"phase"`
	Illumination int    `json:"illumination"`
	Description  string `json:"description"`
}

// DailySummary общая астрономическая сводка дня
type DailySummary struct {
	Date            string   `json:"date"` // YYYY-MM-DD
	Moon            MoonInfo `json:"moon"`
	GeneralEnergy   string   `json:"general_energy"`
	Recommendations []string `json:"recommendations"`
	Cached          bool     `json:"cached"`
}

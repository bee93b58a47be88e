package weatherapi

import "encoding/json"

// astronomyResponse ответ WeatherAPI на /astronomy.json
// moon_illumination в старых версиях API приходит строкой, в новых числом,
// поэтому поле читается как json.Number
type astronomyResponse struct {
	Astronomy struct {
		Astro struct {
			Sunrise          string      `json:"sunrise"`
			Sunset           string      `json:"sunset"`
			Moonrise         string      `json:"moonrise"`
			Moonset          string      `json:"moonset"`
			MoonPhase        string      `json:"moon_phase"`
			MoonIllumination json.Number `json:"moon_illumination"`
		} `json:"astro"`
	} `json:"astronomy"`
}

// errorResponse ответ WeatherAPI при ошибке
type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

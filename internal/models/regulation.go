package models

// Regulation - нормативный документ из базы регуляций
type Regulation struct {
	ID        string   `json:"id"`
	Code      string   `json:"code"`
	Title     string   `json:"title"`
	Authority string   `json:"authority"`
	Category  string   `json:"category"`
	Content   string   `json:"content"`
	Keywords  []string `json:"keywords"`
}

// RegulationMatch - результат поиска по регуляциям
type RegulationMatch struct {
	Regulation
	Score float64 `json:"score"`
}

package domain

// CategoryInfo describes a category together with how many products it holds.
type CategoryInfo struct {
	Key          Category `json:"key"`
	Name         string   `json:"name"`
	ProductCount int      `json:"productCount"`
}

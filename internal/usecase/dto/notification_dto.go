package dto

// FanOutResult - итог рассылки по району
type FanOutResult struct {
	Batches   int `json:"batches"`
	Delivered int `json:"delivered"`
	Failed    int `json:"failed"`
}

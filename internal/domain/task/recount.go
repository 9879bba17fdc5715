package task

const (
	TypeCategoryRecount = "CategoryRecountTask"
	TypeRecountRetry    = "RecountRetryTask"
)

// CategoryRecountTask asks a worker to refresh a category's product_count
// after a product in it was created, edited, toggled or deleted.
type CategoryRecountTask struct {
	Category  string `json:"category"`
	ProductID string `json:"product_id"`
	Reason    string `json:"reason"` // create, update, toggle, delete
}

func (t *CategoryRecountTask) TaskType() string {
	return TypeCategoryRecount
}

func (t *CategoryRecountTask) TaskValue() ([]byte, error) {
	return DefaultTaskValue(t)
}

type RecountRetryTask struct {
	Category   string `json:"category"`
	RetryCount int    `json:"retry_count"`
	Error      string `json:"error"` // Error message from the last failure
}

func (t *RecountRetryTask) TaskType() string {
	return TypeRecountRetry
}

func (t *RecountRetryTask) TaskValue() ([]byte, error) {
	return DefaultTaskValue(t)
}

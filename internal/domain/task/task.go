package task

import "encoding/json"

// Task is a unit of background work carried on a Redis stream named after
// its TaskType.
type Task interface {
	TaskType() string
	TaskValue() ([]byte, error)
}

// Types lists every task type a worker may receive.
var Types = []string{
	TypeCategoryRecount,
	TypeRecountRetry,
}

// DefaultTaskValue provides a common implementation for TaskValue
func DefaultTaskValue(task any) ([]byte, error) {
	return json.Marshal(task)
}

func UnmarshalTask[T Task](data []byte) (T, error) {
	var t T
	err := json.Unmarshal(data, &t)
	return t, err
}

package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalTask(t *testing.T) {
	original := &RecountRetryTask{Category: "Home", RetryCount: 2, Error: "timeout"}
	data, err := original.TaskValue()
	require.NoError(t, err)

	decoded, err := UnmarshalTask[*RecountRetryTask](data)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)

	_, err = UnmarshalTask[*CategoryRecountTask]([]byte("not json"))
	assert.Error(t, err)
}

func TestTypesMatchTaskTypes(t *testing.T) {
	assert.Equal(t, []string{
		(&CategoryRecountTask{}).TaskType(),
		(&RecountRetryTask{}).TaskType(),
	}, Types)
}

package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type config struct {
	name  string
	limit int
}

func withName(n string) Option[*config] {
	return NoError(func(c *config) { c.name = n })
}

func withLimit(n int) Option[*config] {
	return New(func(c *config) error {
		if n < 0 {
			return errors.New("limit must be non-negative")
		}
		c.limit = n
		return nil
	})
}

func TestApplyInOrder(t *testing.T) {
	c := &config{}
	err := Apply(c, withName("a"), withLimit(5))
	require.NoError(t, err)
	require.Equal(t, "a", c.name)
	require.Equal(t, 5, c.limit)
}

func TestApplyStopsAtFirstError(t *testing.T) {
	c := &config{}
	err := Apply(c, withName("a"), withLimit(-1), withName("b"))
	require.Error(t, err)
	require.Equal(t, "a", c.name) // first option still applied
}

func TestApplyNoOptions(t *testing.T) {
	c := &config{}
	require.NoError(t, Apply(c))
}

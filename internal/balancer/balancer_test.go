package balancer

import (
	"testing"

	"proxy-rotator/internal/errdefs"

	"github.com/stretchr/testify/require"
)

func TestBalancer(t *testing.T) {
	t.Run("UnknownStrategy", func(t *testing.T) {
		_, err := New("random")
		require.ErrorIs(t, err, errdefs.ErrInvalidInput)
	})

	t.Run("EmptyMapsToNoProxy", func(t *testing.T) {
		b, err := New("round_robin")
		require.NoError(t, err)

		_, err = b.NextProxy()
		require.ErrorIs(t, err, errdefs.ErrNoProxy)
	})

	t.Run("ResetAndRotate", func(t *testing.T) {
		b, err := New("round_robin")
		require.NoError(t, err)

		b.ResetProxies([]string{"1.2.3.4:80", "5.6.7.8:81"})
		require.Equal(t, 2, b.Len())
		require.Equal(t, []string{"1.2.3.4:80", "5.6.7.8:81"}, b.Proxies())

		first, _ := b.NextProxy()
		second, _ := b.NextProxy()
		third, _ := b.NextProxy()
		require.Equal(t, "1.2.3.4:80", first)
		require.Equal(t, "5.6.7.8:81", second)
		require.Equal(t, "1.2.3.4:80", third)
	})
}

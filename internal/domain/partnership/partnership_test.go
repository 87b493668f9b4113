package partnership

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPartnership_NormalizesPair(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	p1, err := NewPartnership(a, b)
	require.NoError(t, err)
	p2, err := NewPartnership(b, a)
	require.NoError(t, err)

	// Both argument orders produce the same canonical pair
	assert.Equal(t, p1.Company1ID, p2.Company1ID)
	assert.Equal(t, p1.Company2ID, p2.Company2ID)
	assert.True(t, bytes.Compare(p1.Company1ID[:], p1.Company2ID[:]) < 0)
}

func TestNewPartnership_RejectsSelfPartnership(t *testing.T) {
	id := uuid.New()

	_, err := NewPartnership(id, id)

	assert.Error(t, err)
}

func TestNewPartnership_RejectsNilCompany(t *testing.T) {
	_, err := NewPartnership(uuid.Nil, uuid.New())

	assert.Error(t, err)
}

func TestPartnership_OtherCompany(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	p, err := NewPartnership(a, b)
	require.NoError(t, err)

	assert.Equal(t, b, p.OtherCompany(a))
	assert.Equal(t, a, p.OtherCompany(b))
	assert.Equal(t, uuid.Nil, p.OtherCompany(uuid.New()))
}

func TestPartnership_MirroringEnabled(t *testing.T) {
	p, err := NewPartnership(uuid.New(), uuid.New())
	require.NoError(t, err)

	assert.False(t, p.MirroringEnabled())

	require.NoError(t, p.EnableAutoPosting())
	assert.True(t, p.MirroringEnabled())

	require.NoError(t, p.Deactivate())
	assert.False(t, p.MirroringEnabled(), "inactive partnership must not mirror even with auto-posting on")
}

func TestPartnership_EnableAutoPostingRequiresActive(t *testing.T) {
	p, err := NewPartnership(uuid.New(), uuid.New())
	require.NoError(t, err)
	require.NoError(t, p.Deactivate())

	err = p.EnableAutoPosting()

	assert.Error(t, err)
}

func TestPartnership_ToggleGuards(t *testing.T) {
	p, err := NewPartnership(uuid.New(), uuid.New())
	require.NoError(t, err)

	assert.Error(t, p.Activate(), "already active")
	require.NoError(t, p.EnableAutoPosting())
	assert.Error(t, p.EnableAutoPosting(), "already enabled")
	require.NoError(t, p.DisableAutoPosting())
	assert.Error(t, p.DisableAutoPosting(), "already disabled")
}

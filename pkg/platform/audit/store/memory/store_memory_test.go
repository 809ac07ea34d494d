package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "rtwgate/pkg/domain"
	audit "rtwgate/pkg/platform/audit"
)

func TestInMemoryStore_ListByTenantIsolatesTenants(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()
	tenantA := id.TenantID(uuid.New())
	tenantB := id.TenantID(uuid.New())

	require.NoError(t, store.Append(ctx, audit.Event{TenantID: tenantA, Action: string(audit.EventRTWCheckRecorded)}))
	require.NoError(t, store.Append(ctx, audit.Event{TenantID: tenantA, Action: string(audit.EventShareCodeVerified)}))
	require.NoError(t, store.Append(ctx, audit.Event{TenantID: tenantB, Action: string(audit.EventRTWCheckRecorded)}))

	events, err := store.ListByTenant(ctx, tenantA)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, string(audit.EventRTWCheckRecorded), events[0].Action)
	assert.Equal(t, string(audit.EventShareCodeVerified), events[1].Action)
	assert.Equal(t, 3, store.Count())

	store.Clear()
	assert.Equal(t, 0, store.Count())
}

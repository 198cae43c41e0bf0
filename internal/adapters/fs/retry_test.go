package fs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/solres/internal/adapters/fs"
	"go.trai.ch/solres/internal/core/domain"
	"go.trai.ch/solres/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestRetryingWorkspace_RetriesIOErrorOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := mocks.NewMockWorkspace(ctrl)
	ctx := context.Background()

	gomock.InOrder(
		inner.EXPECT().ReadFile(ctx, "A.sol").Return("", domain.ErrWorkspaceRead),
		inner.EXPECT().ReadFile(ctx, "A.sol").Return("contract A {}", nil),
	)

	got, err := fs.NewRetryingWorkspace(inner).ReadFile(ctx, "A.sol")
	require.NoError(t, err)
	assert.Equal(t, "contract A {}", got)
}

func TestRetryingWorkspace_GivesUpAfterSecondFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := mocks.NewMockWorkspace(ctrl)
	ctx := context.Background()

	inner.EXPECT().WriteFile(ctx, "x", "y").Return(domain.ErrWorkspaceWrite).Times(2)

	err := fs.NewRetryingWorkspace(inner).WriteFile(ctx, "x", "y")
	assert.ErrorIs(t, err, domain.ErrWorkspaceWrite)
}

func TestRetryingWorkspace_DoesNotRetryOtherErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := mocks.NewMockWorkspace(ctrl)
	ctx := context.Background()

	inner.EXPECT().Exists(ctx, "../x").Return(false, domain.ErrPathOutsideWorkspace).Times(1)
	inner.EXPECT().Mkdir(ctx, "d").Return(errors.New("boom")).Times(1)

	ws := fs.NewRetryingWorkspace(inner)
	_, err := ws.Exists(ctx, "../x")
	assert.ErrorIs(t, err, domain.ErrPathOutsideWorkspace)
	assert.EqualError(t, ws.Mkdir(ctx, "d"), "boom")
}

func TestRetryingWorkspace_SetRoot(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	inner, err := fs.NewWorkspace(first)
	require.NoError(t, err)

	ws := fs.NewRetryingWorkspace(inner)
	require.NoError(t, ws.SetRoot(second))
	assert.Equal(t, second, ws.Root())
}

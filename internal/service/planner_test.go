package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gitlab.com/tozd/go/errors"

	"github.com/omegaatt36/batchren/internal/adapter/regex"
	"github.com/omegaatt36/batchren/internal/domain"
	"github.com/omegaatt36/batchren/internal/mock"
	"github.com/omegaatt36/batchren/internal/testutil"
)

func TestPlannerService_Plan(t *testing.T) {
	items := []domain.Item{
		{Identity: "/a/Tree_01.prefab", Name: "Tree_01"},
		{Identity: "/a/Tree_02.prefab", Name: "Tree_02"},
		{Identity: "/a/Rock.prefab", Name: "Rock"},
	}

	t.Run("regex mode", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sel := mock.NewMockSelectionProvider(ctrl)
		sel.EXPECT().Selection(gomock.Any()).Return(items, nil)

		svc := NewPlannerService(sel, &regex.Engine{})
		plan, err := svc.Plan(testutil.Context(t), domain.RenameSpec{Pattern: `_0(\d)`, Replacement: "_v$1"})
		require.NoError(t, err)
		require.Len(t, plan, 3)
		assert.Equal(t, "Tree_v1", plan[0].NewName)
		assert.Equal(t, "Tree_v2", plan[1].NewName)
		assert.Equal(t, "Rock", plan[2].NewName)
	})

	t.Run("preserves selection order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sel := mock.NewMockSelectionProvider(ctrl)
		reversed := []domain.Item{items[2], items[0], items[1]}
		sel.EXPECT().Selection(gomock.Any()).Return(reversed, nil)

		svc := NewPlannerService(sel, &regex.Engine{})
		plan, err := svc.Plan(testutil.Context(t), domain.RenameSpec{Replacement: "p_", IsPrefix: true})
		require.NoError(t, err)
		for i := range reversed {
			assert.Equal(t, reversed[i].Identity, plan[i].Identity)
		}
	})

	t.Run("invalid pattern is rejected before reading selection", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sel := mock.NewMockSelectionProvider(ctrl)

		svc := NewPlannerService(sel, &regex.Engine{})
		plan, err := svc.Plan(testutil.Context(t), domain.RenameSpec{Pattern: "[oops", Replacement: "x"})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidPattern)
		assert.Nil(t, plan)
	})

	t.Run("empty pattern skips the compiler", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sel := mock.NewMockSelectionProvider(ctrl)
		compiler := mock.NewMockPatternCompiler(ctrl)
		sel.EXPECT().Selection(gomock.Any()).Return(items[:1], nil)

		svc := NewPlannerService(sel, compiler)
		plan, err := svc.Plan(testutil.Context(t), domain.RenameSpec{Replacement: "Bush"})
		require.NoError(t, err)
		assert.Equal(t, "Bush", plan[0].NewName)
	})

	t.Run("affix overrides pattern", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sel := mock.NewMockSelectionProvider(ctrl)
		sel.EXPECT().Selection(gomock.Any()).Return(items[:1], nil)

		svc := NewPlannerService(sel, &regex.Engine{})
		plan, err := svc.Plan(testutil.Context(t), domain.RenameSpec{Pattern: "_01", Replacement: "X", IsPostfix: true})
		require.NoError(t, err)
		assert.Equal(t, "Tree_01X", plan[0].NewName)
	})

	t.Run("selection is re-read on every plan", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sel := mock.NewMockSelectionProvider(ctrl)
		gomock.InOrder(
			sel.EXPECT().Selection(gomock.Any()).Return(items[:1], nil),
			sel.EXPECT().Selection(gomock.Any()).Return(items, nil),
		)

		svc := NewPlannerService(sel, &regex.Engine{})
		spec := domain.RenameSpec{Replacement: "x"}
		first, err := svc.Plan(testutil.Context(t), spec)
		require.NoError(t, err)
		second, err := svc.Plan(testutil.Context(t), spec)
		require.NoError(t, err)
		assert.Len(t, first, 1)
		assert.Len(t, second, 3)
	})

	t.Run("selection error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sel := mock.NewMockSelectionProvider(ctrl)
		sel.EXPECT().Selection(gomock.Any()).Return(nil, errors.New("gone"))

		svc := NewPlannerService(sel, &regex.Engine{})
		_, err := svc.Plan(testutil.Context(t), domain.RenameSpec{Replacement: "x"})
		assert.ErrorContains(t, err, "reading selection")
	})
}

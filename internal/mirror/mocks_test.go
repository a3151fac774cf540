package mirror

import (
	"context"

	"github.com/kevinfinalboss/corsair/internal/registry"
	"github.com/kevinfinalboss/corsair/pkg/types"
	"github.com/stretchr/testify/mock"
)

type MockRegistry struct {
	mock.Mock
}

func (m *MockRegistry) GetName() string {
	return m.Called().String(0)
}

func (m *MockRegistry) GetType() string {
	return m.Called().String(0)
}

func (m *MockRegistry) Endpoint() string {
	return m.Called().String(0)
}

func (m *MockRegistry) Credentials(ctx context.Context) (types.Credential, error) {
	args := m.Called(ctx)
	return args.Get(0).(types.Credential), args.Error(1)
}

func (m *MockRegistry) IsHealthy(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockRegistry) HasManifest(ctx context.Context, repositoryPath, tag string) registry.Presence {
	args := m.Called(ctx, repositoryPath, tag)
	return args.Get(0).(registry.Presence)
}

func (m *MockRegistry) PreparePush(ctx context.Context, repositoryPath string) error {
	return m.Called(ctx, repositoryPath).Error(0)
}

type MockCopier struct {
	mock.Mock
}

func (m *MockCopier) Name() string {
	return m.Called().String(0)
}

func (m *MockCopier) Copy(ctx context.Context, req CopyRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockCopier) Plan(req CopyRequest) []string {
	return m.Called(req).Get(0).([]string)
}

func (m *MockCopier) Inspect(ctx context.Context, ref string, cred types.Credential) registry.Presence {
	args := m.Called(ctx, ref, cred)
	return args.Get(0).(registry.Presence)
}

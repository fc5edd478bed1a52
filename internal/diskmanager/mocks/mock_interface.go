// mock_interface.go - testify/mock implementation of diskmanager.UsageProvider
package mock_diskmanager

import (
	"github.com/stretchr/testify/mock"

	"github.com/tphakala/roamvid/internal/diskmanager"
)

// Compile-time check; only the external diskmanager_test package imports this mock.
var _ diskmanager.UsageProvider = (*MockUsageProvider)(nil)

// MockUsageProvider is a mock implementation of diskmanager.UsageProvider
type MockUsageProvider struct {
	mock.Mock
}

// DiskUsage mocks the DiskUsage method
func (m *MockUsageProvider) DiskUsage(path string) (diskmanager.DiskSpaceInfo, error) {
	args := m.Called(path)
	info, ok := args.Get(0).(diskmanager.DiskSpaceInfo)
	if !ok {
		return diskmanager.DiskSpaceInfo{}, args.Error(1)
	}
	return info, args.Error(1)
}

package shadow

// ManagerBuilderOption is a function that configures a Manager during construction.
type ManagerBuilderOption func(*Manager)

// WithVerboseLogging logs every reservation.
func WithVerboseLogging(verbose bool) ManagerBuilderOption {
	return func(m *Manager) {
		m.verbose = verbose
	}
}

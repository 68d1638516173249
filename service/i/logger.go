package i

// Logger is the component logger used by services and stores.
type Logger interface {
	Info(string)
	Warning(string)
	Error(string)
}

package apiclient

// LoginPath is where the console is sent when the server revokes the session.
const LoginPath = "/login"

// Navigator receives navigation events issued by the client.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to a Navigator.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) {
	f(path)
}

type noopNavigator struct{}

func (noopNavigator) Navigate(string) {}

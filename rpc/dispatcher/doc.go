// Package dispatcher implements the command protocol of the roads service.
//
// A command is one line of text. Parse classifies it into a tagged Command
// before the store is touched; the Dispatcher then runs the matching store
// operation and serializes the result into the response line:
//
//	get countries      -> {"1":"Wonderland",...}
//	get roads <id>     -> [{"country":1,"townA":5,"townB":6,"distance":7},...]
//	get towns <id>     -> {"5":"Start",...}
//	finish             -> finish (the session closes the connection afterward)
//	anything else      -> unknown command
//
// Store failures are answered with "error: no such table or db is unavailable"
// and logged with the underlying error. The dispatcher never returns an error.
package dispatcher

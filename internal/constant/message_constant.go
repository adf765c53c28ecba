package constant

// Texts returned to clients in {"message": ...} bodies. The CLI prints them
// verbatim, so changing one is a visible change.
const (
	MsgCredentialsRequired = "Username and password are required"
	MsgUsernameTaken       = "Username is already taken"
	MsgUserRegistered      = "User registered successfully"
	MsgUserNotFound        = "User not found"
	MsgInvalidCredentials  = "Invalid credentials"
	MsgPasswordTooLong     = "Password must be at most 72 bytes"

	MsgNoteFieldsRequired = "Title and content are required"
	MsgNoteCreated        = "Note created successfully"
	MsgNoteUpdated        = "Note updated successfully"
	MsgNoteDeleted        = "Note deleted successfully"
	MsgNoteNotFound       = "Note not found"

	MsgMissingToken = "Missing token"
	MsgInvalidToken = "Invalid token"

	MsgInvalidBody   = "Invalid request body"
	MsgRouteNotFound = "Route not found"

	MsgRunning = "quicknotes backend is running live"
)

const ContextKeyUserID = "user_id"

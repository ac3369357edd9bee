package session

const (
	// KeyUser holds the serialized session document.
	KeyUser = "vetcare_user"
	// KeyEmail holds the denormalized signed-in email.
	KeyEmail = "userEmail"
	// KeyName holds the denormalized display name.
	KeyName = "userName"
	// KeyUserType holds the denormalized role string.
	KeyUserType = "userType"
	// KeyRemember flags that the user asked to stay signed in.
	KeyRemember = "rememberMe"
)

// Keys lists every storage key the session store owns, in clear order.
func Keys() []string {
	return []string{KeyUser, KeyEmail, KeyName, KeyUserType, KeyRemember}
}

package vetcare

// User-facing messages. The wording is part of the client contract and is
// asserted by embedder UI tests; change with care.
const (
	// MsgWelcomeAdmin is an exported constant or variable used by the storefront client.
	MsgWelcomeAdmin = "Welcome Administrator!"
	// MsgWelcomeCustomer is an exported constant or variable used by the storefront client.
	MsgWelcomeCustomer = "Welcome to VetCare!"
	// MsgInvalidCredentials is an exported constant or variable used by the storefront client.
	MsgInvalidCredentials = "Invalid credentials. Please check your email and password."
	// MsgLoginError is an exported constant or variable used by the storefront client.
	MsgLoginError = "Login error. Please try again."
	// MsgLoginRateLimited is an exported constant or variable used by the storefront client.
	MsgLoginRateLimited = "Too many attempts. Please try again later."
	// MsgEmailTaken is an exported constant or variable used by the storefront client.
	MsgEmailTaken = "This email is already registered."
	// MsgRegisterSuccess is an exported constant or variable used by the storefront client.
	MsgRegisterSuccess = "Registration successful!"
	// MsgRegisterError is an exported constant or variable used by the storefront client.
	MsgRegisterError = "Registration error. Please try again."
	// MsgCompleteAllFields is an exported constant or variable used by the storefront client.
	MsgCompleteAllFields = "Please complete all fields"
	// MsgPasswordsDoNotMatch is an exported constant or variable used by the storefront client.
	MsgPasswordsDoNotMatch = "Passwords do not match"
	// MsgPasswordTooShort is an exported constant or variable used by the storefront client.
	MsgPasswordTooShort = "Password must be at least 6 characters long"
	// MsgAcceptTerms is an exported constant or variable used by the storefront client.
	MsgAcceptTerms = "You must accept the terms and conditions"
	// MsgInvalidEmail is an exported constant or variable used by the storefront client.
	MsgInvalidEmail = "Please enter a valid email"
	// MsgAccessDenied is an exported constant or variable used by the storefront client.
	MsgAccessDenied = "Access denied. You do not have permission to view this page."
)

package handlers

// ErrorCode values are part of the wire contract; clients switch on the
// string, so the spelling (including ExisitingAccountError) is frozen.
type ErrorCode string

const (
	CodeError             ErrorCode = "Error"
	CodeValidationError   ErrorCode = "ValidationError"
	CodeInvalidLogin      ErrorCode = "InvalidLoginError"
	CodeExistingAccount   ErrorCode = "ExisitingAccountError"
	CodeNotRegisteredUser ErrorCode = "NotRegisteredUser"
	CodeNotRegisteredRole ErrorCode = "NotRegisteredRole"
	CodeNotRegisteredDoor ErrorCode = "NotRegisteredDoor"
)

var errorMessages = map[ErrorCode]string{
	CodeError:             "No error details available.",
	CodeValidationError:   "A validation error occurred.",
	CodeInvalidLogin:      "Invalid login error occurred.",
	CodeExistingAccount:   "This account already exists",
	CodeNotRegisteredUser: "This user is not registered",
	CodeNotRegisteredRole: "This role is not registered",
	CodeNotRegisteredDoor: "This door is not registered",
}

// ResponseResult is the envelope every endpoint answers with. A successful
// response carries an empty ErrorCode.
type ResponseResult struct {
	Data             any      `json:"Data"`
	DeveloperMessage string   `json:"DeveloperMessage"`
	ErrorMessage     string   `json:"ErrorMessage"`
	ErrorCode        string   `json:"ErrorCode"`
	ValidationErrors []string `json:"ValidationErrors"`
}

func Succeeded() ResponseResult {
	return ResponseResult{ValidationErrors: []string{}}
}

func SucceededWithData(data any) ResponseResult {
	return ResponseResult{Data: data, ValidationErrors: []string{}}
}

func Failed(code ErrorCode, validationErrors ...string) ResponseResult {
	res := ResponseResult{
		ErrorCode:        string(code),
		ErrorMessage:     errorMessages[code],
		ValidationErrors: []string{},
	}
	res.ValidationErrors = append(res.ValidationErrors, validationErrors...)
	return res
}

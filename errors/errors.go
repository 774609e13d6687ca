package errors

/*
* Error codes are intended to convey detailed errors internally and to clients.
* These should be combined with the appropriate HTTP status code, but are not
* intended to supercede correct HTTP responses. Therefore there is no error
* code for "user not found" because HTTP 404 is sufficient.
*
* Error codes are grouped under HTTP status code. These should be returned
* with HTTP 400 unless otherwise stated.
 */

const (

	// HTTP 400 Bad Request.
	// Content does not match Content-Type or unmarshalling error.
	InvalidContent ErrCode = 1
	// A required field (id, phone number) was blank or absent.
	MissingFields ErrCode = 2
	// Avatar upload without a file part.
	FileRequired ErrCode = 3
	// Uploaded content is not a decodable image.
	InvalidImage ErrCode = 4

	// HTTP 413 Request Entity Too Large.
	FileTooLarge ErrCode = 5

	// HTTP 500 Internal Server Error.
	// Object storage rejected or failed the upload.
	UploadFailed ErrCode = 6
)

// ErrCode is a machine-readable error code carried alongside the HTTP status.
type ErrCode uint8

// TalkyError implements the Error interface.
type TalkyError struct {
	Function     string  `json:"-"`
	ErrorCode    ErrCode `json:"errorCode"`
	ErrorMessage string  `json:"errorDetail"`
}

func (e TalkyError) Error() string {
	return e.ErrorMessage
}

func New(function string, errCode ErrCode, errMessage string) error {
	return &TalkyError{
		Function:     function,
		ErrorCode:    errCode,
		ErrorMessage: errMessage,
	}
}

package models

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/golang/glog"
	"github.com/gorilla/mux"
)

// Context wraps a single API request with the helpers the controllers use to
// read it and respond to it.
type Context struct {
	Request        *http.Request
	ResponseWriter http.ResponseWriter
	RouteVars      map[string]string
	StartTime      time.Time
}

// StandardResponse is the uniform envelope returned for every request.
type StandardResponse struct {
	Status int         `json:"status"`
	Data   interface{} `json:"data"`
	Errors []string    `json:"error"`
}

// MakeContext builds the request context used by all controllers
func MakeContext(
	request *http.Request,
	responseWriter http.ResponseWriter,
) *Context {
	return &Context{
		Request:        request,
		ResponseWriter: responseWriter,
		RouteVars:      mux.Vars(request),
		StartTime:      time.Now(),
	}
}

// GetHTTPMethod returns the HTTP method of the request
func (c *Context) GetHTTPMethod() string {
	return c.Request.Method
}

// Fill decodes the JSON request body into the given destination
func (c *Context) Fill(dst interface{}) error {
	return json.NewDecoder(c.Request.Body).Decode(dst)
}

// Respond writes the standard response envelope
func (c *Context) Respond(
	data interface{},
	statusCode int,
	errors []string,
) error {

	obj := StandardResponse{
		Status: statusCode,
		Data:   data,
		Errors: errors,
	}

	// Prevent content type detection, a.k.a. sniffing
	c.ResponseWriter.Header().Set("Content-Type", "application/json")
	c.ResponseWriter.Header().Set("Access-Control-Allow-Origin", "*")

	output, err := json.Marshal(obj)
	if err != nil {
		http.Error(c.ResponseWriter, err.Error(), http.StatusInternalServerError)
		return err
	}

	// Prevent chunking
	c.ResponseWriter.Header().Set("Content-Length", strconv.Itoa(len(output)))

	return c.WriteResponse(output, statusCode)
}

// WriteResponse ultimately does the job of writing the response
func (c *Context) WriteResponse(output []byte, statusCode int) error {

	c.ResponseWriter.WriteHeader(statusCode)

	// HEAD requests return no body and are used to check headers for cache
	// invalidation functions
	if c.GetHTTPMethod() == "HEAD" {
		return nil
	}

	_, err := c.ResponseWriter.Write(output)

	// We only log at error severity when an error is not the result of the
	// client disconnecting. "broken pipe" is a syscall.EPIPE error that
	// indicates client disconnection.
	if err != nil {
		opErr, ok := err.(*net.OpError)
		if !ok || opErr.Err != syscall.EPIPE {
			glog.Errorf(
				"Error writing %s response to %s : %+v\n",
				c.GetHTTPMethod(),
				c.Request.URL.String(),
				err,
			)
		} else {
			glog.Warningf(
				"Error writing %s response to %s : %+v\n",
				c.GetHTTPMethod(),
				c.Request.URL.String(),
				err,
			)
		}
		return err
	}

	return nil
}

// RespondWithOptions responds to an OPTIONS request with the allowed methods
func (c *Context) RespondWithOptions(options []string) error {
	c.ResponseWriter.Header().Set("Allow", strings.Join(options, ","))
	c.ResponseWriter.Header().Set("Content-Length", "0")
	c.ResponseWriter.WriteHeader(http.StatusOK)
	return nil
}

// RespondWithStatus responds with a custom status code and an empty
// StandardResponse struct
func (c *Context) RespondWithStatus(statusCode int) error {
	return c.Respond(nil, statusCode, nil)
}

// RespondWithErrorMessage responds with a custom code and an error message
func (c *Context) RespondWithErrorMessage(
	message string,
	statusCode int,
) error {
	return c.Respond(nil, statusCode, []string{message})
}

// RespondWithErrorDetail responds with a detailed error code and message in
// the "data" object.
func (c *Context) RespondWithErrorDetail(err error, statusCode int) error {
	return c.Respond(err, statusCode, []string{err.Error()})
}

// RespondWithData responds with the specified data
func (c *Context) RespondWithData(data interface{}) error {
	return c.Respond(data, http.StatusOK, nil)
}

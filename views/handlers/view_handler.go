package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/qolzam/telar-blog/internal/types"
	viewsErrors "github.com/qolzam/telar-blog/views/errors"
	"github.com/qolzam/telar-blog/views/services"
	"google.golang.org/grpc/codes"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ViewHandler serves the callable HTTP endpoint of the view counter
type ViewHandler struct {
	viewService services.ViewService
}

// NewViewHandler creates a new ViewHandler with injected dependencies
func NewViewHandler(viewService services.ViewService) *ViewHandler {
	return &ViewHandler{viewService: viewService}
}

// IncrementPostView handles POST .../incrementPostView.
// It accepts {"postId": "..."} and {"data": {"postId": "..."}} alike.
func (h *ViewHandler) IncrementPostView(c *fiber.Ctx) error {
	postID, err := ExtractPostID(c.Body())
	if err != nil {
		return viewsErrors.HandleCallableError(c, err)
	}

	result, err := h.viewService.Increment(c.UserContext(), postID)
	if err != nil {
		return viewsErrors.HandleCallableError(c, err)
	}
	return c.JSON(result)
}

// ExtractPostID normalizes both request shapes to the post id.
// A falsy data field falls back to the top-level postId.
// A missing or non-string postId yields "", which the service rejects.
func ExtractPostID(body []byte) (string, error) {
	if len(body) == 0 {
		return "", nil
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", viewsErrors.InvalidArgument(viewsErrors.MsgInvalidBody)
	}
	if payload == nil {
		return "", nil
	}

	if data := payload["data"]; !isFalsy(data) {
		nested, ok := data.(map[string]interface{})
		if !ok {
			return "", nil
		}
		payload = nested
	}

	postID, _ := payload["postId"].(string)
	return postID, nil
}

// isFalsy matches the values a callable client treats as "no data": null, false, 0 and "".
// Any other data replaces the top-level payload.
func isFalsy(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case float64:
		return x == 0
	case string:
		return x == ""
	}
	return false
}

// LimitReached answers a rate-limited call with the RESOURCE_EXHAUSTED envelope
func LimitReached(retryAfterSeconds int) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		c.Set(types.HeaderRetryAfter, strconv.Itoa(retryAfterSeconds))
		return viewsErrors.HandleCallableError(c, &viewsErrors.CallableError{
			Code:    codes.ResourceExhausted,
			Message: viewsErrors.MsgTooManyRequests,
		})
	}
}

// Package response writes the non-JSON responses of the dashboard: HTML
// pages and CSV downloads.
package response

import (
	"bytes"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v3"
)

// HTML buffers the page so a render error never leaves a half-written body.
func HTML(c fiber.Ctx, status int, render func(w io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}

func CSV(c fiber.Ctx, filename string, write func(w io.Writer) error) error {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+strconv.Quote(filename))
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}

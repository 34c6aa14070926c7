package handlers

import (
	"context"
	"encoding/base64"

	"github.com/danielgtaylor/huma/v2"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

const qrImageSize = 256

// QRCode returns a base64-encoded PNG QR code for an owned short URL.
func (h *URLHandler) QRCode(ctx context.Context, req *GetURLRequest) (*QRCodeResponse, error) {
	record, err := h.ownedRecord(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	shortURL := h.ShortURL(record.ShortCode)

	png, err := qrcode.Encode(shortURL, qrcode.Medium, qrImageSize)
	if err != nil {
		h.logger.Error("qr code generation failed",
			zap.String("code", record.ShortCode),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to generate qr code")
	}

	resp := &QRCodeResponse{}
	resp.Body.ShortURL = shortURL
	resp.Body.QRCode = base64.StdEncoding.EncodeToString(png)

	return resp, nil
}

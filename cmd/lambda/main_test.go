package main

import (
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
)

func TestMarkAuthorized(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		claims  map[string]string
		want    map[string]string
	}{
		{
			name:   "authorizer claims become headers",
			claims: map[string]string{"sub": "user-1", "email": "a@b.c"},
			want: map[string]string{
				"X-API-Gateway-Authorized": "true",
				"X-User-ID":                "user-1",
				"X-User-Email":             "a@b.c",
			},
		},
		{
			name:    "spoofed headers are dropped",
			headers: map[string]string{"x-api-gateway-authorized": "true", "x-user-id": "mallory", "accept": "*/*"},
			want:    map[string]string{"accept": "*/*"},
		},
		{
			name:    "empty subject is ignored",
			headers: map[string]string{},
			claims:  map[string]string{"email": "a@b.c"},
			want:    map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := events.APIGatewayV2HTTPRequest{Headers: tt.headers}
			if tt.claims != nil {
				req.RequestContext.Authorizer = &events.APIGatewayV2HTTPRequestContextAuthorizerDescription{
					JWT: &events.APIGatewayV2HTTPRequestContextAuthorizerJWTDescription{Claims: tt.claims},
				}
			}
			markAuthorized(&req)
			assert.Equal(t, tt.want, req.Headers)
		})
	}
}

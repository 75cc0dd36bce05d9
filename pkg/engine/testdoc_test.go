package engine

import (
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/restmock/pkg/config"
)

const petstoreYAML = `
openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
components:
  securitySchemes:
    apiKey:
      type: apiKey
      in: header
      name: X-API-Key
  schemas:
    Pet:
      type: object
      properties:
        id:
          type: integer
          minimum: 1
          maximum: 99
        name:
          type: string
        address:
          type: object
          properties:
            city:
              type: string
            zip:
              type: string
paths:
  /pets:
    get:
      parameters:
        - name: limit
          in: query
          required: true
          schema:
            type: integer
      responses:
        '200':
          description: ok
          headers:
            X-Request-Id:
              schema:
                type: string
                format: uuid
            X-Rate-Limit:
              schema:
                type: integer
                minimum: 100
                maximum: 100
          content:
            application/json:
              schema:
                type: array
                minItems: 2
                items:
                  $ref: '#/components/schemas/Pet'
    post:
      responses:
        '400':
          description: bad
        '201':
          description: created
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Pet'
  /pets/{petId}:
    get:
      responses:
        '200':
          description: ok
          content:
            application/json:
              example:
                id: 7
                name: Rex
    delete:
      responses:
        '204':
          description: gone
  /audit:
    parameters:
      - name: since
        in: query
        required: true
        schema:
          type: string
    get:
      responses:
        '200':
          description: ok
    put:
      parameters:
        - name: since
          in: query
          required: false
          schema:
            type: string
      responses:
        '200':
          description: ok
  /secure:
    get:
      security:
        - apiKey: []
      responses:
        '200':
          description: ok
          content:
            application/json:
              example:
                ok: true
  /things/{thing:id}:
    get:
      responses:
        default:
          description: fallback
`

func loadPetstore(t *testing.T) *openapi3.T {
	t.Helper()
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData([]byte(petstoreYAML))
	require.NoError(t, err)
	return doc
}

func newTestServer(t *testing.T, mutate func(*config.Config), opts ...ServerOption) *Server {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	srv, err := NewServer(loadPetstore(t), cfg, opts...)
	require.NoError(t, err)
	return srv
}

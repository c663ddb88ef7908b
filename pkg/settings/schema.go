// pkg/settings/schema.go
package settings

const settingsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["backend", "ages"],
  "properties": {
    "backend": {
      "type": "string",
      "minLength": 1
    },
    "index": {
      "type": "string"
    },
    "ages": {
      "type": "string",
      "pattern": "^\\s*[0-9]+\\s*,"
    },
    "exclude": {
      "type": "string"
    },
    "disable_search_box": {
      "type": "boolean"
    },
    "disable_spots_available": {
      "type": "boolean"
    },
    "expander_sections": {
      "type": "object"
    }
  }
}`

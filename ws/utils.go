package ws

import (
	"fmt"
	"net/http"
	"reflect"
	"strconv"

	"go-splendor/entities"
	"go-splendor/session"

	"github.com/gorilla/websocket"
	"github.com/mitchellh/mapstructure"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// 自定义 HookFunc，把字符串转换成 int
func stringToIntHookFunc() mapstructure.DecodeHookFunc {
	return func(from reflect.Kind, to reflect.Kind, data interface{}) (interface{}, error) {
		if from == reflect.String && to == reflect.Int {
			return strconv.Atoi(data.(string))
		}
		return data, nil
	}
}

// decodePayload 把 payload 解码到结构体
func decodePayload(payload map[string]interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       stringToIntHookFunc(),
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(payload); err != nil {
		return session.Reject(fmt.Errorf("decode payload: %w", err), "Malformed payload.")
	}
	return nil
}

// parseGems {"White": 1} -> map[GemType]int，颜色不区分大小写
func parseGems(in map[string]int) (map[entities.GemType]int, error) {
	out := make(map[entities.GemType]int, len(in))
	for name, n := range in {
		g, err := entities.ParseGem(name)
		if err != nil {
			return nil, err
		}
		if _, dup := out[g]; dup {
			return nil, fmt.Errorf("duplicate color %s", g.Upper())
		}
		out[g] = n
	}
	return out, nil
}

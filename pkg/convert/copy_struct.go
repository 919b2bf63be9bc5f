package convert

import (
	"github.com/bytedance/sonic"
	"github.com/jinzhu/copier"
)

// StructAssign copies same-named fields of src into dst
// StructAssign 把 src 与 dst 同名字段的值复制到 dst 中
func StructAssign(src any, dst any) error {
	return copier.CopyWithOption(dst, src, copier.Option{DeepCopy: true})
}

// StructToMap 结构体按 json 标签转为 map
func StructToMap(param any) (map[string]any, error) {
	data := map[string]any{}
	b, err := sonic.Marshal(param)
	if err != nil {
		return nil, err
	}
	if err := sonic.Unmarshal(b, &data); err != nil {
		return nil, err
	}
	return data, nil
}

package dao

import (
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/convert"

	"github.com/pkg/errors"
)

// copyStruct 在领域模型与数据库模型之间复制同名字段
func copyStruct(src, dst any) error {
	if err := convert.StructAssign(src, dst); err != nil {
		return errors.Wrap(err, "copy struct failed")
	}
	return nil
}

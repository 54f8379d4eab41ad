package view

// Status 一次请求/响应周期的生命周期状态
// idle → generating → success | error，之后可以再次提交回到 generating
type Status string

const (
	// StatusIdle 尚未提交过请求
	StatusIdle Status = "idle"
	// StatusGenerating 请求进行中，此时禁止再次提交
	StatusGenerating Status = "generating"
	// StatusSuccess 最近一次请求成功，代码可展示
	StatusSuccess Status = "success"
	// StatusError 最近一次请求失败，展示固定错误文案
	StatusError Status = "error"
)

func (s Status) String() string {
	return string(s)
}

// IsSettled 请求是否已结束
func (s Status) IsSettled() bool {
	return s == StatusSuccess || s == StatusError
}

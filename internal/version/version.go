package version

import "runtime"

// Version 项目版本号
const Version = "0.3.0"

// ProjectName 项目名称
const ProjectName = "scriptgen"

// GetVersionInfo 获取完整版本信息
func GetVersionInfo() string {
	return ProjectName + " v" + Version
}

// UserAgent 上游请求使用的 User-Agent
func UserAgent() string {
	return ProjectName + "/" + Version + " (" + runtime.GOOS + "; " + runtime.Version() + ")"
}

package code

import "net/http"

var (
	Success       = NewSuss(1, http.StatusOK, lang{en: "Success", zh_cn: "成功"})
	SuccessCreate = NewSuss(2, http.StatusCreated, lang{en: "Created successfully", zh_cn: "创建成功"})
	SuccessUpdate = NewSuss(3, http.StatusOK, lang{en: "Updated successfully", zh_cn: "更新成功"})
	SuccessDelete = NewSuss(4, http.StatusNoContent, lang{en: "Deleted successfully", zh_cn: "删除成功"})
	SuccessLogin  = NewSuss(5, http.StatusOK, lang{en: "Login successful", zh_cn: "登录成功"})
)

var (
	Failed              = NewError(400, http.StatusServiceUnavailable, lang{en: "Failed", zh_cn: "失败"})
	ErrorServerInternal = NewError(500, http.StatusInternalServerError, lang{en: "Internal Server Error", zh_cn: "服务器内部错误"})
	ErrorNotFoundAPI    = NewError(404, http.StatusNotFound, lang{en: "API not found", zh_cn: "接口不存在"})
	ErrorInvalidParams  = NewError(405, http.StatusBadRequest, lang{en: "Invalid parameters", zh_cn: "参数验证失败"})
	ErrorDBQuery        = NewError(406, http.StatusInternalServerError, lang{en: "Database query failed", zh_cn: "数据库查询失败"})

	ErrorInvalidAuthToken     = NewError(504, http.StatusUnauthorized, lang{en: "Invalid auth token", zh_cn: "授权 Token 无效"})
	ErrorNotUserAuthToken     = NewError(505, http.StatusUnauthorized, lang{en: "Missing auth token", zh_cn: "缺少授权 Token"})
	ErrorInvalidUserAuthToken = NewError(506, http.StatusUnauthorized, lang{en: "Invalid or expired auth token", zh_cn: "授权 Token 无效或已过期"})
	ErrorTokenGenerate        = NewError(507, http.StatusInternalServerError, lang{en: "Failed to generate token", zh_cn: "生成 Token 失败"})

	ErrorUserRegisterIsDisable   = NewError(510, http.StatusForbidden, lang{en: "Registration is disabled", zh_cn: "注册已关闭"})
	ErrorUserEmailAlreadyExists  = NewError(511, http.StatusForbidden, lang{en: "Credentials taken", zh_cn: "该邮箱已被注册"})
	ErrorUserLoginPasswordFailed = NewError(512, http.StatusForbidden, lang{en: "Credentials incorrect", zh_cn: "邮箱或密码错误"})
	ErrorUserNotFound            = NewError(513, http.StatusUnauthorized, lang{en: "User not found", zh_cn: "用户不存在"})
	ErrorUserRegister            = NewError(514, http.StatusInternalServerError, lang{en: "Registration failed", zh_cn: "注册失败"})
	ErrorPasswordNotValid        = NewError(515, http.StatusBadRequest, lang{en: "Password is not valid", zh_cn: "密码不合法"})

	ErrorBookmarkNotFound = NewError(520, http.StatusNotFound, lang{en: "Bookmark not found", zh_cn: "书签不存在"})
)

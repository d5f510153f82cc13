package handler

const (
	jsonKeyError   = "error"
	jsonKeyMessage = "message"

	paramID = "id"

	queryLimit      = "limit"
	queryOrg        = "organization_id"
	queryOffset     = "offset"
	queryType       = "type"
	queryStatus     = "status"
	queryDepartment = "department_id"
	queryAssignee   = "assignee_id"
	queryUnread     = "unread"

	formFieldFile = "file"
)

const (
	msgContentTypeJSONRequired = "Content-Type must be application/json"
	msgInvalidRequestBody      = "invalid request body"
	msgInvalidCredentials      = "invalid email or password"
	msgEmailAlreadyExists      = "email already exists"
	msgPasswordProcessFail     = "failed to process password"
	msgCreateAccountFail       = "failed to create account"
	msgGenerateTokenFail       = "failed to generate token"

	msgInvalidID           = "invalid id"
	msgInvalidOrgID        = "invalid organization id"
	msgInvalidDeptID       = "invalid department id"
	msgInvalidUserID       = "invalid user id"
	msgInvalidTaskID       = "invalid task id"
	msgInvalidTaskType     = "invalid task type"
	msgInvalidTaskStatus   = "invalid task status"
	msgInvalidRole         = "invalid role"
	msgInvalidVerdict      = "verdict must be approved or rejected"
	msgMissingFile         = "no file provided. Use 'file' as the form-data field name"
	msgFileTooLarge        = "file exceeds the maximum upload size"
	msgTaskNotFound        = "task not found"
	msgUserNotFound        = "user not found"
	msgOrgNotFound         = "organization not found"
	msgDeptNotFound        = "department not found"
	msgVendorNotFound      = "vendor not found"
	msgMaterialNotFound    = "material not found"
	msgCommentNotFound     = "comment not found"
	msgAttachmentNotFound  = "attachment not found"
	msgNotifNotFound       = "notification not found"
	msgProcurementRequired = "operation applies to procurement tasks only"
	msgApprovalRequired    = "operation applies to approval tasks only"
	msgAlreadyOrdered      = "procurement task already ordered"
	msgVerdictRecorded     = "approval verdict already recorded"

	msgCreateOrgFail        = "failed to create organization"
	msgListOrgsFail         = "failed to list organizations"
	msgUpdateOrgFail        = "failed to update organization"
	msgDeleteOrgFail        = "failed to delete organization"
	msgOrgDeleted           = "organization deleted"
	msgCreateDeptFail       = "failed to create department"
	msgListDeptsFail        = "failed to list departments"
	msgUpdateDeptFail       = "failed to update department"
	msgDeleteDeptFail       = "failed to delete department"
	msgDeptDeleted          = "department deleted"
	msgCreateUserFail       = "failed to create user"
	msgListUsersFail        = "failed to list users"
	msgUpdateUserFail       = "failed to update user"
	msgDeleteUserFail       = "failed to delete user"
	msgUserDeleted          = "user deleted"
	msgCreateTaskFail       = "failed to create task"
	msgListTasksFail        = "failed to list tasks"
	msgUpdateTaskFail       = "failed to update task"
	msgDeleteTaskFail       = "failed to delete task"
	msgTaskDeleted          = "task deleted"
	msgAssignTaskFail       = "failed to assign task"
	msgApproveTaskFail      = "failed to record approval verdict"
	msgOrderTaskFail        = "failed to mark task ordered"
	msgUploadAttachmentFail = "failed to upload attachment"
	msgListAttachmentsFail  = "failed to list attachments"
	msgDownloadLinkFail     = "failed to generate download link"
	msgDeleteAttachmentFail = "failed to delete attachment"
	msgAttachmentDeleted    = "attachment deleted"
	msgCreateCommentFail    = "failed to create comment"
	msgListCommentsFail     = "failed to list comments"
	msgUpdateCommentFail    = "failed to update comment"
	msgDeleteCommentFail    = "failed to delete comment"
	msgCommentDeleted       = "comment deleted"
	msgCreateVendorFail     = "failed to create vendor"
	msgListVendorsFail      = "failed to list vendors"
	msgUpdateVendorFail     = "failed to update vendor"
	msgDeleteVendorFail     = "failed to delete vendor"
	msgVendorDeleted        = "vendor deleted"
	msgCreateMaterialFail   = "failed to create material"
	msgListMaterialsFail    = "failed to list materials"
	msgUpdateMaterialFail   = "failed to update material"
	msgDeleteMaterialFail   = "failed to delete material"
	msgMaterialDeleted      = "material deleted"
	msgListNotifsFail       = "failed to list notifications"
	msgMarkReadFail         = "failed to mark notification read"
	msgDeleteNotifFail      = "failed to delete notification"
	msgNotificationDeleted  = "notification deleted"
)

package postgres

import (
	"fmt"
	"time"
)

const (
	poolHealthCheckPeriod = time.Minute
	poolMaxConnLifetime   = time.Hour
	poolMaxConnIdleTime   = 30 * time.Minute
	dbPingTimeout         = 5 * time.Second

	defaultListLimit = 100
	maxListLimit     = 500

	errOrganizationNotFound = "organization not found"
	errDepartmentNotFound   = "department not found"
	errUserNotFound         = "user not found"
	errTaskNotFound         = "task not found"
	errAttachmentNotFound   = "attachment not found"
	errCommentNotFound      = "comment not found"
	errVendorNotFound       = "vendor not found"
	errMaterialNotFound     = "material not found"
	errNotificationNotFound = "notification not found"

	errFailedParseDatabaseConfigFmt  = "failed to parse database config: %w"
	errFailedCreateConnectionPoolFmt = "failed to create connection pool: %w"
	errFailedPingDatabaseFmt         = "failed to ping database: %w"

	errFailedStartTransactionFmt  = "failed to start transaction: %w"
	errFailedCommitTransactionFmt = "failed to commit transaction: %w"
	errFailedCreateOrgFmt         = "failed to create organization: %w"
	errFailedGetOrgFmt            = "failed to get organization: %w"
	errFailedListOrgsFmt          = "failed to list organizations: %w"
	errFailedUpdateOrgFmt         = "failed to update organization: %w"
	errFailedDeleteOrgFmt         = "failed to delete organization: %w"
	errFailedCreateDeptFmt        = "failed to create department: %w"
	errFailedGetDeptFmt           = "failed to get department: %w"
	errFailedListDeptsFmt         = "failed to list departments: %w"
	errFailedUpdateDeptFmt        = "failed to update department: %w"
	errFailedDeleteDeptFmt        = "failed to delete department: %w"
	errFailedCreateUserFmt        = "failed to create user: %w"
	errFailedGetUserFmt           = "failed to get user: %w"
	errFailedListUsersFmt         = "failed to list users: %w"
	errFailedScanUserFmt          = "failed to scan user: %w"
	errFailedUpdateUserFmt        = "failed to update user: %w"
	errFailedDeleteUserFmt        = "failed to delete user: %w"
	errFailedCreateTaskFmt        = "failed to create task: %w"
	errFailedGetTaskFmt           = "failed to get task: %w"
	errFailedListTasksFmt         = "failed to list tasks: %w"
	errFailedScanTaskFmt          = "failed to scan task: %w"
	errFailedUpdateTaskFmt        = "failed to update task: %w"
	errFailedDeleteTaskFmt        = "failed to delete task: %w"
	errFailedCreateAttachmentFmt  = "failed to create attachment: %w"
	errFailedGetAttachmentFmt     = "failed to get attachment: %w"
	errFailedListAttachmentsFmt   = "failed to list attachments: %w"
	errFailedDeleteAttachmentFmt  = "failed to delete attachment: %w"
	errFailedCreateCommentFmt     = "failed to create comment: %w"
	errFailedGetCommentFmt        = "failed to get comment: %w"
	errFailedListCommentsFmt      = "failed to list comments: %w"
	errFailedUpdateCommentFmt     = "failed to update comment: %w"
	errFailedDeleteCommentFmt     = "failed to delete comment: %w"
	errFailedCreateVendorFmt      = "failed to create vendor: %w"
	errFailedGetVendorFmt         = "failed to get vendor: %w"
	errFailedListVendorsFmt       = "failed to list vendors: %w"
	errFailedUpdateVendorFmt      = "failed to update vendor: %w"
	errFailedDeleteVendorFmt      = "failed to delete vendor: %w"
	errFailedCreateMaterialFmt    = "failed to create material: %w"
	errFailedGetMaterialFmt       = "failed to get material: %w"
	errFailedListMaterialsFmt     = "failed to list materials: %w"
	errFailedUpdateMaterialFmt    = "failed to update material: %w"
	errFailedDeleteMaterialFmt    = "failed to delete material: %w"
	errFailedCreateNotifFmt       = "failed to create notification: %w"
	errFailedGetNotifFmt          = "failed to get notification: %w"
	errFailedListNotifsFmt        = "failed to list notifications: %w"
	errFailedUpdateNotifFmt       = "failed to update notification: %w"
	errFailedDeleteNotifFmt       = "failed to delete notification: %w"
)

func errFailedParseDatabaseConfig(err error) error {
	return fmt.Errorf(errFailedParseDatabaseConfigFmt, err)
}

func errFailedCreateConnectionPool(err error) error {
	return fmt.Errorf(errFailedCreateConnectionPoolFmt, err)
}

func errFailedPingDatabase(err error) error {
	return fmt.Errorf(errFailedPingDatabaseFmt, err)
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

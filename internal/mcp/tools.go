package mcp

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"fsops/pkg/fileops"

	"github.com/mark3labs/mcp-go/mcp"
)

// Tool names
const (
	ToolMoveFile          = "move_file"
	ToolCopyFile          = "copy_file"
	ToolSwapNames         = "swap_names"
	ToolLockFile          = "lock_file"
	ToolUnlockFile        = "unlock_file"
	ToolIsLocked          = "is_locked"
	ToolNextAvailableName = "next_available_name"
	ToolFirstExisting     = "first_existing"
)

var toolNames = []string{
	ToolMoveFile, ToolCopyFile, ToolSwapNames, ToolLockFile,
	ToolUnlockFile, ToolIsLocked, ToolNextAvailableName, ToolFirstExisting,
}

func policyNames() []string {
	names := make([]string, len(fileops.Policies))
	for i, p := range fileops.Policies {
		names[i] = p.String()
	}
	return names
}

func (s *Server) registerTools() {
	transferOpts := func(verb string) []mcp.ToolOption {
		return []mcp.ToolOption{
			mcp.WithDescription(fmt.Sprintf(
				"%s a file to a destination path. When the destination exists, the conflict policy decides what happens.", verb)),
			mcp.WithString("source", mcp.Required(), mcp.Description("Path of the file to "+strings.ToLower(verb))),
			mcp.WithString("destination", mcp.Required(), mcp.Description("Destination path, including the file name")),
			mcp.WithString("policy",
				mcp.Description("Conflict policy; defaults to "+s.manager.DefaultPolicy().String()),
				mcp.Enum(policyNames()...),
			),
		}
	}

	s.mcpServer.AddTool(mcp.NewTool(ToolMoveFile, transferOpts("Move")...), s.handleMove)
	s.mcpServer.AddTool(mcp.NewTool(ToolCopyFile, transferOpts("Copy")...), s.handleCopy)

	s.mcpServer.AddTool(mcp.NewTool(ToolSwapNames,
		mcp.WithDescription("Exchange the names of two existing files or directories"),
		mcp.WithString("first", mcp.Required(), mcp.Description("First path")),
		mcp.WithString("second", mcp.Required(), mcp.Description("Second path")),
	), s.handleSwap)

	pathArg := mcp.WithString("path", mcp.Required(), mcp.Description("Path of the target file"))
	s.mcpServer.AddTool(mcp.NewTool(ToolLockFile,
		mcp.WithDescription("Take the advisory lock on a file by creating <path>.lock; fails if already held"),
		pathArg,
	), s.handleLock)
	s.mcpServer.AddTool(mcp.NewTool(ToolUnlockFile,
		mcp.WithDescription("Release the advisory lock on a file"),
		pathArg,
	), s.handleUnlock)
	s.mcpServer.AddTool(mcp.NewTool(ToolIsLocked,
		mcp.WithDescription("Report whether a file's advisory lock is held"),
		pathArg,
	), s.handleIsLocked)

	s.mcpServer.AddTool(mcp.NewTool(ToolNextAvailableName,
		mcp.WithDescription(`Return the first free name in the sequence "name.ext", "name (2).ext", "name (3).ext", ...`),
		mcp.WithString("path", mcp.Required(), mcp.Description("Desired path")),
	), s.handleNextAvailableName)

	s.mcpServer.AddTool(mcp.NewTool(ToolFirstExisting,
		mcp.WithDescription("Return the first of several paths that exists"),
		mcp.WithString("paths", mcp.Required(), mcp.Description("Comma separated candidate paths, checked in order")),
	), s.handleFirstExisting)

	s.logger.Debug("Registered MCP tools", "tools", toolNames)
}

// errorResult reports err as a tool error prefixed with its kind.
func (s *Server) errorResult(tool string, err error) *mcp.CallToolResult {
	s.logger.Debug("MCP tool failed", "tool", tool, "error", err)
	return mcp.NewToolResultError(fmt.Sprintf("%s: %v", fileops.KindName(err), err))
}

// requirePath reads a required path argument and resolves it to an absolute path.
func requirePath(req mcp.CallToolRequest, name string) (string, error) {
	raw, err := req.RequireString(name)
	if err != nil {
		return "", &fileops.PathError{Op: "read argument", Kind: fileops.ErrInvalidArgument, Err: err}
	}
	return fileops.ResolvePath(raw)
}

func (s *Server) handleMove(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.handleTransfer(ToolMoveFile, fileops.OpMove, req), nil
}

func (s *Server) handleCopy(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.handleTransfer(ToolCopyFile, fileops.OpCopy, req), nil
}

func (s *Server) handleTransfer(tool string, op fileops.Operation, req mcp.CallToolRequest) *mcp.CallToolResult {
	src, err := requirePath(req, "source")
	if err != nil {
		return s.errorResult(tool, err)
	}
	dst, err := requirePath(req, "destination")
	if err != nil {
		return s.errorResult(tool, err)
	}

	policy := s.manager.DefaultPolicy()
	if name := req.GetString("policy", ""); name != "" {
		policy, err = fileops.ParseConflictPolicy(name)
		if err != nil {
			return s.errorResult(tool, err)
		}
	}

	res, err := s.manager.Execute(fileops.OperationRequest{Op: op, Source: src, Destination: dst, Policy: policy})
	if err != nil {
		return s.errorResult(tool, err)
	}

	s.logger.Info("MCP transfer", "tool", tool, "source", src, "resolved", res.ResolvedPath, "outcome", res.Outcome)
	return mcp.NewToolResultText(fmt.Sprintf("%s: %s", res.Outcome, res.ResolvedPath))
}

func (s *Server) handleSwap(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	first, err := requirePath(req, "first")
	if err != nil {
		return s.errorResult(ToolSwapNames, err), nil
	}
	second, err := requirePath(req, "second")
	if err != nil {
		return s.errorResult(ToolSwapNames, err), nil
	}
	if err := s.manager.Swap(first, second); err != nil {
		return s.errorResult(ToolSwapNames, err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("swapped %s and %s", first, second)), nil
}

func (s *Server) handleLock(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := requirePath(req, "path")
	if err != nil {
		return s.errorResult(ToolLockFile, err), nil
	}
	h, err := s.manager.Locker().Lock(path)
	if err != nil {
		return s.errorResult(ToolLockFile, err), nil
	}
	return mcp.NewToolResultText("locked: " + h.MarkerPath), nil
}

func (s *Server) handleUnlock(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := requirePath(req, "path")
	if err != nil {
		return s.errorResult(ToolUnlockFile, err), nil
	}
	if err := s.manager.Locker().Unlock(path); err != nil {
		return s.errorResult(ToolUnlockFile, err), nil
	}
	return mcp.NewToolResultText("unlocked: " + path), nil
}

func (s *Server) handleIsLocked(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := requirePath(req, "path")
	if err != nil {
		return s.errorResult(ToolIsLocked, err), nil
	}
	locked, err := s.manager.Locker().IsLocked(path)
	if err != nil {
		return s.errorResult(ToolIsLocked, err), nil
	}
	return mcp.NewToolResultText(strconv.FormatBool(locked)), nil
}

func (s *Server) handleNextAvailableName(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := requirePath(req, "path")
	if err != nil {
		return s.errorResult(ToolNextAvailableName, err), nil
	}
	name, err := s.manager.NextAvailableName(path)
	if err != nil {
		return s.errorResult(ToolNextAvailableName, err), nil
	}
	return mcp.NewToolResultText(name), nil
}

func (s *Server) handleFirstExisting(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("paths")
	if err != nil {
		return s.errorResult(ToolFirstExisting, &fileops.PathError{Op: "read argument", Kind: fileops.ErrInvalidArgument, Err: err}), nil
	}

	var candidates []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		resolved, err := fileops.ResolvePath(p)
		if err != nil {
			return s.errorResult(ToolFirstExisting, err), nil
		}
		candidates = append(candidates, resolved)
	}

	found, err := s.manager.FirstExisting(candidates...)
	if err != nil {
		return s.errorResult(ToolFirstExisting, err), nil
	}
	return mcp.NewToolResultText(found), nil
}

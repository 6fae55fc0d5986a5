// Package shell runs command lines on behalf of an alias.
//
// Two executors are provided. [Native] hands each line to the host shell
// ("sh -c" or "cmd /c"). [Virtual] interprets the line in-process with
// mvdan.cc/sh, which keeps behavior identical across platforms and never
// touches the host process state.
//
// Both report completion as an [Outcome], which distinguishes a clean exit,
// a non-zero exit status, and abnormal termination.
package shell

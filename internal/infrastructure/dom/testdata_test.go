package dom

const taskPage = `<!DOCTYPE html>
<html>
<head>
<meta name="csrf-token" content="tok-abc">
</head>
<body>
<table>
<tr>
  <td><span class="badge bg-secondary" data-task-status data-task-id="t1">pending</span></td>
  <td data-task-message data-task-id="t1">queued</td>
  <td data-result-link-container data-task-id="t1"></td>
  <td><button class="btn task-run-btn" data-task-id="t1">Run task</button></td>
  <td><button class="btn task-status-btn" data-task-id="t1">Refresh</button></td>
</tr>
<tr>
  <td><span class="badge" data-task-status data-task-id="t2">running</span></td>
</tr>
</table>
<form data-confirm-leave id="namelist"><input name="x"></form>
<div data-confirm-leave>not a form</div>
</body>
</html>`
